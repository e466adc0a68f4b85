package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinkeep/contexts/family-core/reminder-service/adapters/llm"
	"kinkeep/contexts/family-core/reminder-service/adapters/memory"
	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	"kinkeep/internal/platform/messaging"
	"kinkeep/internal/shared/events"
)

type staticGenerator struct {
	output string
	err    error
}

func (g staticGenerator) Generate(context.Context, string) (string, error) {
	return g.output, g.err
}

func seedReminder(t *testing.T, store *memory.Store, id string, tenantID string, dueAt time.Time) {
	t.Helper()
	err := store.CreateReminder(context.Background(), entities.Reminder{
		ReminderID: id,
		TenantID:   tenantID,
		Title:      "Water the plants",
		Message:    "The ferns in the hallway",
		DueAt:      dueAt,
	})
	if err != nil {
		t.Fatalf("seed reminder failed: %v", err)
	}
}

func drain(ch <-chan events.Envelope) []events.Envelope {
	var collected []events.Envelope
	for {
		select {
		case event := <-ch:
			collected = append(collected, event)
		default:
			return collected
		}
	}
}

func TestRunOncePublishesComposedNags(t *testing.T) {
	store := memory.NewStore()
	bus := messaging.NewBus(nil)
	received := bus.Subscribe(TopicReminderDue, 8)
	now := time.Now().UTC()

	seedReminder(t, store, "r-due", "tenant-a", now.Add(-time.Minute))
	seedReminder(t, store, "r-future", "tenant-a", now.Add(time.Hour))

	dispatcher := DueReminderDispatcher{
		Reminders: store,
		Settings:  store,
		Composer:  llm.Composer{Generator: staticGenerator{output: `{"message":"Those ferns won't water themselves.","tone":"playful"}`}},
		Publisher: bus,
		Clock:     store,
		IDGen:     store,
	}
	if err := dispatcher.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	published := drain(received)
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	event := published[0]
	if event.EventType != TopicReminderDue || event.TenantID != "tenant-a" || event.EntityID != "r-due" {
		t.Fatalf("unexpected envelope: %+v", event)
	}
	payload, ok := event.Payload.(ReminderDuePayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.Message != "Those ferns won't water themselves." || payload.Tone != "playful" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestRunOnceFallsBackWhenComposerFails(t *testing.T) {
	store := memory.NewStore()
	bus := messaging.NewBus(nil)
	received := bus.Subscribe(TopicReminderDue, 8)
	now := time.Now().UTC()

	seedReminder(t, store, "r-due", "tenant-a", now.Add(-time.Minute))

	dispatcher := DueReminderDispatcher{
		Reminders: store,
		Settings:  store,
		Composer:  llm.Composer{Generator: staticGenerator{err: errors.New("model unavailable")}},
		Publisher: bus,
		Clock:     store,
		IDGen:     store,
	}
	if err := dispatcher.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	published := drain(received)
	if len(published) != 1 {
		t.Fatalf("compose failure must not block dispatch, got %d events", len(published))
	}
	payload := published[0].Payload.(ReminderDuePayload)
	if payload.Message != "The ferns in the hallway" {
		t.Fatalf("expected the reminder's own text, got %q", payload.Message)
	}
}

func TestRunOnceDoesNotRedispatch(t *testing.T) {
	store := memory.NewStore()
	bus := messaging.NewBus(nil)
	received := bus.Subscribe(TopicReminderDue, 8)
	now := time.Now().UTC()

	seedReminder(t, store, "r-due", "tenant-a", now.Add(-time.Minute))

	dispatcher := DueReminderDispatcher{
		Reminders: store,
		Settings:  store,
		Composer:  llm.Composer{Generator: staticGenerator{output: `{"message":"Go","tone":"firm"}`}},
		Publisher: bus,
		Clock:     store,
		IDGen:     store,
	}
	if err := dispatcher.RunOnce(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := dispatcher.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if published := drain(received); len(published) != 1 {
		t.Fatalf("a dispatched reminder must not go out twice, got %d events", len(published))
	}
}
