package ports

import (
	"context"
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	contractsv1 "clinicalh/contracts/gen/events/v1"
)

// Clock abstracts current time so every temporal decision is deterministic
// in tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for records/audit/outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PatientSummary is the dashboard listing projection.
type PatientSummary struct {
	PatientID  string                 `json:"patient_id"`
	FullName   string                 `json:"full_name"`
	Age        int                    `json:"age"`
	Gender     string                 `json:"gender"`
	DocumentID string                 `json:"document_id"`
	Room       string                 `json:"room"`
	Insurer    string                 `json:"insurer"`
	Status     entities.PatientStatus `json:"status"`
	MedsDue    int                    `json:"meds_due"`
	AdmittedAt time.Time              `json:"admitted_at"`
}

// PatientDetail embeds the patient and its owned collections.
type PatientDetail struct {
	Patient     entities.Patient       `json:"patient"`
	Medications []entities.Medication  `json:"medications"`
	Notes       []entities.MedicalNote `json:"notes"`
	MedsDue     int                    `json:"meds_due"`
}

// NoteEditInput is persisted atomically: the note content update, its
// audit event and the outbox row commit together or not at all. The
// pre-image is captured inside the transaction so concurrent edits each
// record the state that was actually true when their update applied.
type NoteEditInput struct {
	NoteID     string
	EventID    string
	OutboxID   string
	NewTitle   string
	NewContent string
	EditedBy   string
	EditorName string
	EditedAt   time.Time
}

// NoteEditResult returns the updated note and the appended audit event.
type NoteEditResult struct {
	Note  entities.MedicalNote
	Event entities.NoteEditEvent
}

// AdministerInput is persisted atomically with a compare-and-set on the
// medication status; the loser of a concurrent race gets a conflict.
type AdministerInput struct {
	MedicationID       string
	EventID            string
	OutboxID           string
	AdministeredBy     string
	AdministeredByName string
	Notes              string
	AdministeredAt     time.Time
}

// AdministerResult returns the medication in its given state and the
// appended administration event.
type AdministerResult struct {
	Medication entities.Medication
	Event      entities.MedicationAdministrationEvent
}

// DischargeInput carries the one-way status transition plus the
// system-authored note recorded with it in the same transaction.
type DischargeInput struct {
	PatientID    string
	NoteID       string
	OutboxID     string
	Note         entities.MedicalNote
	DischargedAt time.Time
}

// DischargeResult returns the discharged patient and the system note.
type DischargeResult struct {
	Patient entities.Patient
	Note    entities.MedicalNote
}

// Repository is the write/read boundary for clinical record state.
// Mutation methods that touch audited resources must commit state change,
// audit event and outbox row in one transaction.
type Repository interface {
	ListPatients(ctx context.Context) ([]PatientSummary, error)
	GetPatient(ctx context.Context, patientID string) (PatientDetail, error)
	CreatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error)
	UpdatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
	DischargePatient(ctx context.Context, input DischargeInput) (DischargeResult, error)

	GetNote(ctx context.Context, noteID string) (entities.MedicalNote, error)
	AddNote(ctx context.Context, note entities.MedicalNote) (entities.MedicalNote, error)
	EditNote(ctx context.Context, input NoteEditInput) (NoteEditResult, error)
	ListPatientNotes(ctx context.Context, patientID string) ([]entities.MedicalNote, error)
	ListNoteEdits(ctx context.Context, noteID string) ([]entities.NoteEditEvent, error)

	GetMedication(ctx context.Context, medicationID string) (entities.Medication, error)
	AddMedication(ctx context.Context, medication entities.Medication) (entities.Medication, error)
	RemoveMedication(ctx context.Context, patientID string, medicationID string) error
	AdministerMedication(ctx context.Context, input AdministerInput) (AdministerResult, error)
	ListAdministrations(ctx context.Context, medicationID string) ([]entities.MedicationAdministrationEvent, error)
}

// EventEnvelope is the outbox payload relayed to the event bus. It reuses
// the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// OutboxMessage represents a pending relay row.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher emits relayed clinical events to the bus adapter.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
