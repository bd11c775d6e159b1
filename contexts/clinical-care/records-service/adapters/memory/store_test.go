package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

func seedPatient(t *testing.T, store *Store, patientID string, room string) entities.Patient {
	t.Helper()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	patient, err := store.CreatePatient(context.Background(), entities.Patient{
		PatientID:     patientID,
		FullName:      "Ana Torres",
		Age:           7,
		Gender:        "Femenino",
		Insurer:       "Sura",
		GuardianName:  "Luz Torres",
		GuardianPhone: "3001234567",
		Room:          room,
		Status:        entities.PatientStatusStable,
		AdmittedAt:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("create patient failed: %v", err)
	}
	return patient
}

func TestCreatePatientAutoAssignsLowestFreeRoom(t *testing.T) {
	store := NewStore()

	first := seedPatient(t, store, "pat-1", "")
	if first.Room != "101" {
		t.Fatalf("expected room 101, got %q", first.Room)
	}
	second := seedPatient(t, store, "pat-2", "")
	if second.Room != "102" {
		t.Fatalf("expected room 102, got %q", second.Room)
	}

	now := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	if _, err := store.DischargePatient(context.Background(), ports.DischargeInput{
		PatientID:    "pat-1",
		NoteID:       "note-dis-1",
		OutboxID:     "out-dis-1",
		Note:         entities.MedicalNote{Type: entities.NoteTypeGeneral, Title: "Discharge"},
		DischargedAt: now,
	}); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}

	third := seedPatient(t, store, "pat-3", "")
	if third.Room != "101" {
		t.Fatalf("expected freed room 101 to be reused, got %q", third.Room)
	}
}

func TestEditNoteCapturesPreImageAndAppendsOutboxRow(t *testing.T) {
	store := NewStore()
	seedPatient(t, store, "pat-1", "101")

	created := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	if _, err := store.AddNote(context.Background(), entities.MedicalNote{
		NoteID:    "note-1",
		PatientID: "pat-1",
		Type:      entities.NoteTypeVitals,
		Title:     "Morning vitals",
		Content:   "Temp 36.8",
		AuthorID:  "clin-1",
		CreatedAt: created,
		UpdatedAt: created,
	}); err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	editedAt := created.Add(2 * time.Hour)
	result, err := store.EditNote(context.Background(), ports.NoteEditInput{
		NoteID:     "note-1",
		EventID:    "evt-1",
		OutboxID:   "out-1",
		NewTitle:   "Morning vitals",
		NewContent: "Temp 37.2",
		EditedBy:   "clin-1",
		EditorName: "Dr. Gomez",
		EditedAt:   editedAt,
	})
	if err != nil {
		t.Fatalf("edit note failed: %v", err)
	}
	if result.Event.PreviousContent != "Temp 36.8" || result.Event.NewContent != "Temp 37.2" {
		t.Fatalf("pre-image not captured: %+v", result.Event)
	}
	if result.Note.Content != "Temp 37.2" {
		t.Fatalf("note content not replaced: %q", result.Note.Content)
	}
	if !result.Note.CreatedAt.Equal(created) {
		t.Fatalf("edit must not move CreatedAt, got %v", result.Note.CreatedAt)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "clinical.note.edited" {
		t.Fatalf("expected one clinical.note.edited outbox row, got %+v", pending)
	}

	events, err := store.ListNoteEdits(context.Background(), "note-1")
	if err != nil {
		t.Fatalf("list edits failed: %v", err)
	}
	if len(events) != 1 || events[0].EventID != "evt-1" {
		t.Fatalf("expected one audit event, got %+v", events)
	}
}

func TestAdministerMedicationAllowsExactlyOneWinner(t *testing.T) {
	store := NewStore()
	seedPatient(t, store, "pat-1", "101")

	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	if _, err := store.AddMedication(context.Background(), entities.Medication{
		MedicationID: "med-1",
		PatientID:    "pat-1",
		Name:         "Amoxicillin",
		Dose:         "250mg",
		Route:        entities.RouteOral,
		Status:       entities.MedicationStatusDue,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("add medication failed: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := store.AdministerMedication(context.Background(), ports.AdministerInput{
				MedicationID:   "med-1",
				EventID:        "evt-" + string(rune('a'+slot)),
				OutboxID:       "out-" + string(rune('a'+slot)),
				AdministeredBy: "clin-1",
				AdministeredAt: now.Add(time.Minute),
			})
			results[slot] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domainerrors.ErrAlreadyAdministered):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	events, err := store.ListAdministrations(context.Background(), "med-1")
	if err != nil {
		t.Fatalf("list administrations failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one administration event, got %d", len(events))
	}
	medication, err := store.GetMedication(context.Background(), "med-1")
	if err != nil {
		t.Fatalf("get medication failed: %v", err)
	}
	if medication.Status != entities.MedicationStatusGiven {
		t.Fatalf("expected given, got %s", medication.Status)
	}
}

func TestDischargeConflictLeavesNoTrace(t *testing.T) {
	store := NewStore()
	seedPatient(t, store, "pat-1", "101")

	now := time.Date(2026, time.March, 12, 8, 0, 0, 0, time.UTC)
	if _, err := store.DischargePatient(context.Background(), ports.DischargeInput{
		PatientID:    "pat-1",
		NoteID:       "note-dis-1",
		OutboxID:     "out-dis-1",
		Note:         entities.MedicalNote{Type: entities.NoteTypeGeneral, Title: "Discharge", Content: "first"},
		DischargedAt: now,
	}); err != nil {
		t.Fatalf("first discharge failed: %v", err)
	}

	_, err := store.DischargePatient(context.Background(), ports.DischargeInput{
		PatientID:    "pat-1",
		NoteID:       "note-dis-2",
		OutboxID:     "out-dis-2",
		Note:         entities.MedicalNote{Type: entities.NoteTypeGeneral, Title: "Discharge", Content: "second"},
		DischargedAt: now.Add(time.Minute),
	})
	if !errors.Is(err, domainerrors.ErrAlreadyDischarged) {
		t.Fatalf("expected already discharged, got %v", err)
	}

	detail, err := store.GetPatient(context.Background(), "pat-1")
	if err != nil {
		t.Fatalf("get patient failed: %v", err)
	}
	if len(detail.Notes) != 1 {
		t.Fatalf("conflicted discharge must not add a note, got %d notes", len(detail.Notes))
	}
	if store.PendingOutboxCount() != 1 {
		t.Fatalf("conflicted discharge must not add an outbox row, got %d", store.PendingOutboxCount())
	}
}

func TestMedsDueCountsOnlyDueMedications(t *testing.T) {
	store := NewStore()
	seedPatient(t, store, "pat-1", "101")
	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)

	for _, med := range []entities.Medication{
		{MedicationID: "med-1", PatientID: "pat-1", Name: "A", Dose: "1", Route: entities.RouteOral, Status: entities.MedicationStatusDue},
		{MedicationID: "med-2", PatientID: "pat-1", Name: "B", Dose: "1", Route: entities.RouteOral, Status: entities.MedicationStatusAvailable},
		{MedicationID: "med-3", PatientID: "pat-1", Name: "C", Dose: "1", Route: entities.RouteOral, Status: entities.MedicationStatusGiven},
	} {
		med.CreatedAt = now
		med.UpdatedAt = now
		if _, err := store.AddMedication(context.Background(), med); err != nil {
			t.Fatalf("add medication failed: %v", err)
		}
	}

	summaries, err := store.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("list patients failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].MedsDue != 1 {
		t.Fatalf("expected meds_due=1, got %+v", summaries)
	}
}

func TestMarkOutboxPublishedRemovesFromPending(t *testing.T) {
	store := NewStore()
	seedPatient(t, store, "pat-1", "101")

	now := time.Date(2026, time.March, 12, 8, 0, 0, 0, time.UTC)
	if _, err := store.DischargePatient(context.Background(), ports.DischargeInput{
		PatientID:    "pat-1",
		NoteID:       "note-dis-1",
		OutboxID:     "out-dis-1",
		Note:         entities.MedicalNote{Type: entities.NoteTypeGeneral, Title: "Discharge"},
		DischargedAt: now,
	}); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}

	if err := store.MarkOutboxPublished(context.Background(), "out-dis-1", now.Add(time.Second)); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty pending set, got %+v", pending)
	}
}
