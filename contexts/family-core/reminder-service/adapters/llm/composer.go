package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domainerrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	"kinkeep/contexts/family-core/reminder-service/ports"
)

// Composer wraps a raw text generator and validates its output against
// the nag schema. The model may say anything; the only contract enforced
// here is shape: a JSON object with non-empty message and tone.
type Composer struct {
	Generator ports.TextGenerator
}

type nagDocument struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

func (c Composer) Compose(ctx context.Context, nag ports.NagContext) (ports.Nag, error) {
	if c.Generator == nil {
		return ports.Nag{}, fmt.Errorf("%w: no text generator configured", domainerrors.ErrNagComposeFailed)
	}
	raw, err := c.Generator.Generate(ctx, buildPrompt(nag))
	if err != nil {
		return ports.Nag{}, fmt.Errorf("%w: %v", domainerrors.ErrNagComposeFailed, err)
	}

	var doc nagDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ports.Nag{}, fmt.Errorf("%w: malformed generator output: %v", domainerrors.ErrNagComposeFailed, err)
	}
	if strings.TrimSpace(doc.Message) == "" || strings.TrimSpace(doc.Tone) == "" {
		return ports.Nag{}, fmt.Errorf("%w: message and tone are required", domainerrors.ErrNagComposeFailed)
	}
	return ports.Nag{Message: doc.Message, Tone: doc.Tone}, nil
}

func buildPrompt(nag ports.NagContext) string {
	var b strings.Builder
	b.WriteString("Write a short reminder nudge as JSON {\"message\",\"tone\"}.\n")
	fmt.Fprintf(&b, "Tone: %s\n", nag.Tone)
	fmt.Fprintf(&b, "Reminder: %s\n", nag.ReminderTitle)
	if nag.ReminderMessage != "" {
		fmt.Fprintf(&b, "Details: %s\n", nag.ReminderMessage)
	}
	fmt.Fprintf(&b, "Due: %s\n", nag.DueAt.Format("2006-01-02 15:04"))
	return b.String()
}
