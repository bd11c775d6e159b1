package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/ports"
	"clinicalh/internal/shared/events"
)

const firstRoomNumber = 101

// Store is an in-memory repository for tests and local runs. Every
// mutation that carries an audit event applies state change, event and
// outbox row under one lock acquisition, mirroring the transactional
// guarantee of the SQL adapter.
type Store struct {
	mu sync.RWMutex

	patients    map[string]entities.Patient
	notes       map[string]entities.MedicalNote
	medications map[string]entities.Medication

	noteEdits       map[string][]entities.NoteEditEvent
	administrations map[string][]entities.MedicationAdministrationEvent

	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	published   map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		patients:        make(map[string]entities.Patient),
		notes:           make(map[string]entities.MedicalNote),
		medications:     make(map[string]entities.Medication),
		noteEdits:       make(map[string][]entities.NoteEditEvent),
		administrations: make(map[string][]entities.MedicationAdministrationEvent),
		outbox:          make(map[string]ports.OutboxMessage),
		published:       make(map[string]time.Time),
	}
}

var (
	_ ports.Repository       = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
)

func (s *Store) ListPatients(ctx context.Context) ([]ports.PatientSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]ports.PatientSummary, 0, len(s.patients))
	for _, patient := range s.patients {
		summaries = append(summaries, ports.PatientSummary{
			PatientID:  patient.PatientID,
			FullName:   patient.FullName,
			Age:        patient.Age,
			Gender:     patient.Gender,
			DocumentID: patient.DocumentID,
			Room:       patient.Room,
			Insurer:    patient.Insurer,
			Status:     patient.Status,
			MedsDue:    s.countMedsDue(patient.PatientID),
			AdmittedAt: patient.AdmittedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Room != summaries[j].Room {
			return summaries[i].Room < summaries[j].Room
		}
		return summaries[i].FullName < summaries[j].FullName
	})
	return summaries, nil
}

func (s *Store) GetPatient(ctx context.Context, patientID string) (ports.PatientDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patient, ok := s.patients[patientID]
	if !ok {
		return ports.PatientDetail{}, domainerrors.ErrPatientNotFound
	}
	return ports.PatientDetail{
		Patient:     patient,
		Medications: s.patientMedications(patientID),
		Notes:       s.patientNotes(patientID),
		MedsDue:     s.countMedsDue(patientID),
	}, nil
}

func (s *Store) CreatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.patients[patient.PatientID]; exists {
		return entities.Patient{}, fmt.Errorf("%w: patient %s already exists", domainerrors.ErrInvalidRequest, patient.PatientID)
	}
	if patient.Room == "" {
		patient.Room = s.nextFreeRoom()
	}
	s.patients[patient.PatientID] = patient
	return patient, nil
}

func (s *Store) UpdatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[patient.PatientID]; !ok {
		return entities.Patient{}, domainerrors.ErrPatientNotFound
	}
	s.patients[patient.PatientID] = patient
	return patient, nil
}

func (s *Store) DeletePatient(ctx context.Context, patientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[patientID]; !ok {
		return domainerrors.ErrPatientNotFound
	}
	delete(s.patients, patientID)
	for id, note := range s.notes {
		if note.PatientID == patientID {
			delete(s.notes, id)
			delete(s.noteEdits, id)
		}
	}
	for id, medication := range s.medications {
		if medication.PatientID == patientID {
			delete(s.medications, id)
			delete(s.administrations, id)
		}
	}
	return nil
}

func (s *Store) DischargePatient(ctx context.Context, input ports.DischargeInput) (ports.DischargeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[input.PatientID]
	if !ok {
		return ports.DischargeResult{}, domainerrors.ErrPatientNotFound
	}
	if patient.Status == entities.PatientStatusDischarged {
		return ports.DischargeResult{}, domainerrors.ErrAlreadyDischarged
	}

	patient.Status = entities.PatientStatusDischarged
	patient.UpdatedAt = input.DischargedAt
	s.patients[input.PatientID] = patient

	note := input.Note
	note.NoteID = input.NoteID
	note.PatientID = input.PatientID
	s.notes[note.NoteID] = note

	if err := s.appendOutbox(input.OutboxID, events.TopicPatientDischarged, ports.EventEnvelope{
		EventID:    input.OutboxID,
		EventType:  events.TopicPatientDischarged,
		EntityType: "patient",
		EntityID:   input.PatientID,
		OccurredAt: input.DischargedAt,
		Payload:    patient,
	}, input.DischargedAt); err != nil {
		return ports.DischargeResult{}, err
	}

	return ports.DischargeResult{Patient: patient, Note: note}, nil
}

func (s *Store) GetNote(ctx context.Context, noteID string) (entities.MedicalNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[noteID]
	if !ok {
		return entities.MedicalNote{}, domainerrors.ErrNoteNotFound
	}
	return note, nil
}

func (s *Store) AddNote(ctx context.Context, note entities.MedicalNote) (entities.MedicalNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[note.PatientID]; !ok {
		return entities.MedicalNote{}, domainerrors.ErrPatientNotFound
	}
	s.notes[note.NoteID] = note
	return note, nil
}

func (s *Store) EditNote(ctx context.Context, input ports.NoteEditInput) (ports.NoteEditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[input.NoteID]
	if !ok {
		return ports.NoteEditResult{}, domainerrors.ErrNoteNotFound
	}

	event := entities.NoteEditEvent{
		EventID:         input.EventID,
		NoteID:          input.NoteID,
		EditedBy:        input.EditedBy,
		EditedByName:    input.EditorName,
		EditedAt:        input.EditedAt,
		PreviousTitle:   note.Title,
		NewTitle:        input.NewTitle,
		PreviousContent: note.Content,
		NewContent:      input.NewContent,
	}

	note.Title = input.NewTitle
	note.Content = input.NewContent
	note.UpdatedAt = input.EditedAt
	s.notes[input.NoteID] = note
	s.noteEdits[input.NoteID] = append(s.noteEdits[input.NoteID], event)

	if err := s.appendOutbox(input.OutboxID, events.TopicNoteEdited, ports.EventEnvelope{
		EventID:    input.EventID,
		EventType:  events.TopicNoteEdited,
		EntityType: "medical_note",
		EntityID:   input.NoteID,
		OccurredAt: input.EditedAt,
		Payload:    event,
	}, input.EditedAt); err != nil {
		return ports.NoteEditResult{}, err
	}

	return ports.NoteEditResult{Note: note, Event: event}, nil
}

func (s *Store) ListPatientNotes(ctx context.Context, patientID string) ([]entities.MedicalNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.patients[patientID]; !ok {
		return nil, domainerrors.ErrPatientNotFound
	}
	return s.patientNotes(patientID), nil
}

func (s *Store) ListNoteEdits(ctx context.Context, noteID string) ([]entities.NoteEditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.notes[noteID]; !ok {
		return nil, domainerrors.ErrNoteNotFound
	}
	events := append([]entities.NoteEditEvent(nil), s.noteEdits[noteID]...)
	sort.Slice(events, func(i, j int) bool {
		return events[i].EditedAt.After(events[j].EditedAt)
	})
	return events, nil
}

func (s *Store) GetMedication(ctx context.Context, medicationID string) (entities.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	medication, ok := s.medications[medicationID]
	if !ok {
		return entities.Medication{}, domainerrors.ErrMedicationNotFound
	}
	return medication, nil
}

func (s *Store) AddMedication(ctx context.Context, medication entities.Medication) (entities.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[medication.PatientID]; !ok {
		return entities.Medication{}, domainerrors.ErrPatientNotFound
	}
	s.medications[medication.MedicationID] = medication
	return medication, nil
}

func (s *Store) RemoveMedication(ctx context.Context, patientID string, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	medication, ok := s.medications[medicationID]
	if !ok || medication.PatientID != patientID {
		return domainerrors.ErrMedicationNotFound
	}
	delete(s.medications, medicationID)
	return nil
}

func (s *Store) AdministerMedication(ctx context.Context, input ports.AdministerInput) (ports.AdministerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	medication, ok := s.medications[input.MedicationID]
	if !ok {
		return ports.AdministerResult{}, domainerrors.ErrMedicationNotFound
	}
	if medication.Status == entities.MedicationStatusGiven {
		return ports.AdministerResult{}, domainerrors.ErrAlreadyAdministered
	}

	medication.Status = entities.MedicationStatusGiven
	medication.UpdatedAt = input.AdministeredAt
	s.medications[input.MedicationID] = medication

	event := entities.MedicationAdministrationEvent{
		EventID:            input.EventID,
		MedicationID:       input.MedicationID,
		AdministeredBy:     input.AdministeredBy,
		AdministeredByName: input.AdministeredByName,
		AdministeredAt:     input.AdministeredAt,
		Notes:              input.Notes,
	}
	s.administrations[input.MedicationID] = append(s.administrations[input.MedicationID], event)

	if err := s.appendOutbox(input.OutboxID, events.TopicMedicationAdministered, ports.EventEnvelope{
		EventID:    input.EventID,
		EventType:  events.TopicMedicationAdministered,
		EntityType: "medication",
		EntityID:   input.MedicationID,
		OccurredAt: input.AdministeredAt,
		Payload:    event,
	}, input.AdministeredAt); err != nil {
		return ports.AdministerResult{}, err
	}

	return ports.AdministerResult{Medication: medication, Event: event}, nil
}

func (s *Store) ListAdministrations(ctx context.Context, medicationID string) ([]entities.MedicationAdministrationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := append([]entities.MedicationAdministrationEvent(nil), s.administrations[medicationID]...)
	sort.Slice(events, func(i, j int) bool {
		return events[i].AdministeredAt.After(events[j].AdministeredAt)
	})
	return events, nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []ports.OutboxMessage
	for _, id := range s.outboxOrder {
		if _, done := s.published[id]; done {
			continue
		}
		pending = append(pending, s.outbox[id])
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return fmt.Errorf("%w: outbox row %s not found", domainerrors.ErrInvalidRequest, outboxID)
	}
	s.published[outboxID] = publishedAt
	return nil
}

// PendingOutboxCount reports unrelayed rows; used by tests to assert that
// denied or conflicted operations left no trace.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, id := range s.outboxOrder {
		if _, done := s.published[id]; !done {
			count++
		}
	}
	return count
}

func (s *Store) appendOutbox(outboxID string, eventType string, envelope ports.EventEnvelope, createdAt time.Time) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	s.outbox[outboxID] = ports.OutboxMessage{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   payload,
		CreatedAt: createdAt,
	}
	s.outboxOrder = append(s.outboxOrder, outboxID)
	return nil
}

func (s *Store) patientNotes(patientID string) []entities.MedicalNote {
	var notes []entities.MedicalNote
	for _, note := range s.notes {
		if note.PatientID == patientID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].NoteID < notes[j].NoteID
	})
	return notes
}

func (s *Store) patientMedications(patientID string) []entities.Medication {
	var medications []entities.Medication
	for _, medication := range s.medications {
		if medication.PatientID == patientID {
			medications = append(medications, medication)
		}
	}
	sort.Slice(medications, func(i, j int) bool {
		if !medications[i].CreatedAt.Equal(medications[j].CreatedAt) {
			return medications[i].CreatedAt.Before(medications[j].CreatedAt)
		}
		return medications[i].MedicationID < medications[j].MedicationID
	})
	return medications
}

func (s *Store) countMedsDue(patientID string) int {
	count := 0
	for _, medication := range s.medications {
		if medication.PatientID == patientID && medication.Status == entities.MedicationStatusDue {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// nextFreeRoom assigns the lowest free room number starting at 101.
// Discharged patients do not hold their room.
func (s *Store) nextFreeRoom() string {
	occupied := make(map[string]bool, len(s.patients))
	for _, patient := range s.patients {
		if patient.Status != entities.PatientStatusDischarged {
			occupied[patient.Room] = true
		}
	}
	for room := firstRoomNumber; ; room++ {
		candidate := strconv.Itoa(room)
		if !occupied[candidate] {
			return candidate
		}
	}
}
