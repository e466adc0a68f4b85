package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	"kinkeep/contexts/family-core/reminder-service/ports"
)

type staticGenerator struct {
	output string
	err    error
}

func (g staticGenerator) Generate(context.Context, string) (string, error) {
	return g.output, g.err
}

func nagContext() ports.NagContext {
	return ports.NagContext{
		ReminderTitle: "Water the plants",
		Tone:          "playful",
		DueAt:         time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestComposeAcceptsWellFormedOutput(t *testing.T) {
	composer := Composer{Generator: staticGenerator{output: `{"message":"The ferns are thirsty!","tone":"playful"}`}}

	nag, err := composer.Compose(context.Background(), nagContext())
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if nag.Message != "The ferns are thirsty!" || nag.Tone != "playful" {
		t.Fatalf("unexpected nag: %+v", nag)
	}
}

func TestComposeRejectsNonJSONOutput(t *testing.T) {
	composer := Composer{Generator: staticGenerator{output: "Sure! Here's your reminder: water the plants."}}

	if _, err := composer.Compose(context.Background(), nagContext()); !errors.Is(err, domainerrors.ErrNagComposeFailed) {
		t.Fatalf("expected ErrNagComposeFailed, got %v", err)
	}
}

func TestComposeRequiresMessageAndTone(t *testing.T) {
	for _, output := range []string{
		`{"message":"","tone":"playful"}`,
		`{"message":"hello"}`,
		`{"tone":"firm"}`,
		`{}`,
	} {
		composer := Composer{Generator: staticGenerator{output: output}}
		if _, err := composer.Compose(context.Background(), nagContext()); !errors.Is(err, domainerrors.ErrNagComposeFailed) {
			t.Fatalf("output %s: expected ErrNagComposeFailed, got %v", output, err)
		}
	}
}

func TestComposeIgnoresExtraFields(t *testing.T) {
	composer := Composer{Generator: staticGenerator{output: `{"message":"Go!","tone":"firm","confidence":0.9}`}}

	nag, err := composer.Compose(context.Background(), nagContext())
	if err != nil {
		t.Fatalf("extra fields must not fail validation: %v", err)
	}
	if nag.Message != "Go!" {
		t.Fatalf("unexpected nag: %+v", nag)
	}
}

func TestComposeWrapsGeneratorErrors(t *testing.T) {
	composer := Composer{Generator: staticGenerator{err: errors.New("rate limited")}}

	if _, err := composer.Compose(context.Background(), nagContext()); !errors.Is(err, domainerrors.ErrNagComposeFailed) {
		t.Fatalf("expected ErrNagComposeFailed, got %v", err)
	}
}
