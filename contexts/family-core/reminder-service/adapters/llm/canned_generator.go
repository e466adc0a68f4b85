package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
)

// CannedGenerator is the in-process stand-in behind ports.TextGenerator.
// It renders deterministic composer output from the prompt's tone and
// reminder lines; a real model client replaces it behind the same port.
type CannedGenerator struct{}

func (CannedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	tone := promptField(prompt, "Tone")
	if !entities.ValidTone(tone) {
		tone = entities.ToneGentle
	}
	title := promptField(prompt, "Reminder")
	if title == "" {
		title = "your reminder"
	}

	var message string
	switch tone {
	case entities.ToneFirm:
		message = fmt.Sprintf("%s is due. Please handle it now.", title)
	case entities.TonePlayful:
		message = fmt.Sprintf("Psst. %s is not going to do itself.", title)
	default:
		message = fmt.Sprintf("Just a gentle nudge: %s is due.", title)
	}

	raw, err := json.Marshal(nagDocument{Message: message, Tone: tone})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func promptField(prompt string, key string) string {
	scanner := bufio.NewScanner(strings.NewReader(prompt))
	prefix := key + ":"
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
