package unit

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	recordsservice "clinicalh/contexts/clinical-care/records-service"
	"clinicalh/contexts/clinical-care/records-service/ports"
	httptransport "clinicalh/contexts/clinical-care/records-service/transport/http"
)

type capturingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []ports.EventEnvelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() ([]string, []ports.EventEnvelope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...), append([]ports.EventEnvelope(nil), p.events...)
}

func TestOutboxRelayPublishesPendingRows(t *testing.T) {
	publisher := &capturingPublisher{}
	module := recordsservice.NewInMemoryModule(publisher, slog.Default())
	ctx := context.Background()

	patient, err := module.Handler.CreatePatientHandler(ctx, clinicianPrincipal(), httptransport.CreatePatientRequest{
		FullName:      "Ana Torres",
		Age:           7,
		Insurer:       "Sura",
		GuardianName:  "Luis Torres",
		GuardianPhone: "3001234567",
	})
	if err != nil {
		t.Fatalf("admit patient failed: %v", err)
	}

	note, err := module.Handler.AddNoteHandler(ctx, clinicianPrincipal(), patient.Item.PatientID, httptransport.AddNoteRequest{
		Type:    "evolution",
		Title:   "Morning round",
		Content: "Stable overnight.",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}
	if _, err := module.Handler.EditNoteHandler(ctx, clinicianPrincipal(), note.Item.NoteID, httptransport.EditNoteRequest{
		Title:   "Morning round",
		Content: "Stable overnight. Afebrile.",
	}); err != nil {
		t.Fatalf("edit note failed: %v", err)
	}

	medication, err := module.Handler.AddMedicationHandler(ctx, clinicianPrincipal(), patient.Item.PatientID, httptransport.AddMedicationRequest{
		Name: "Amoxicillin",
		Dose: "250mg",
	})
	if err != nil {
		t.Fatalf("add medication failed: %v", err)
	}
	if _, err := module.Handler.AdministerMedicationHandler(ctx, clinicianPrincipal(), medication.Item.MedicationID, httptransport.AdministerMedicationRequest{}); err != nil {
		t.Fatalf("administer failed: %v", err)
	}

	if _, err := module.Handler.DischargePatientHandler(ctx, clinicianPrincipal(), patient.Item.PatientID); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}

	if err := module.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("outbox relay run failed: %v", err)
	}

	topics, events := publisher.published()
	if len(events) != 3 {
		t.Fatalf("expected 3 published events, got %d (topics %v)", len(events), topics)
	}
	counts := map[string]int{}
	for _, topic := range topics {
		counts[topic]++
	}
	if counts["clinical.note.edited"] != 1 ||
		counts["clinical.medication.administered"] != 1 ||
		counts["clinical.patient.discharged"] != 1 {
		t.Fatalf("unexpected topic distribution: %v", counts)
	}
	for _, event := range events {
		if event.EventID == "" || event.EntityID == "" {
			t.Fatalf("published envelope missing identifiers: %+v", event)
		}
	}

	if module.Store.PendingOutboxCount() != 0 {
		t.Fatalf("expected outbox to be drained, got %d pending rows", module.Store.PendingOutboxCount())
	}
}

func TestOutboxRelayIsIdempotentAcrossRuns(t *testing.T) {
	publisher := &capturingPublisher{}
	module := recordsservice.NewInMemoryModule(publisher, slog.Default())
	ctx := context.Background()

	patient, err := module.Handler.CreatePatientHandler(ctx, clinicianPrincipal(), httptransport.CreatePatientRequest{
		FullName:      "Pedro Ruiz",
		Age:           12,
		Insurer:       "Sura",
		GuardianName:  "Marta Ruiz",
		GuardianPhone: "3009876543",
	})
	if err != nil {
		t.Fatalf("admit patient failed: %v", err)
	}
	if _, err := module.Handler.DischargePatientHandler(ctx, clinicianPrincipal(), patient.Item.PatientID); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}

	if err := module.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("first relay run failed: %v", err)
	}
	if err := module.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}

	topics, _ := publisher.published()
	if len(topics) != 1 {
		t.Fatalf("expected published rows to stay published, got %d publishes", len(topics))
	}
}
