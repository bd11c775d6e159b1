package entities

import "time"

// NoteType classifies a medical note.
type NoteType string

const (
	NoteTypeLab        NoteType = "lab"
	NoteTypeVitals     NoteType = "vitals"
	NoteTypeMedication NoteType = "medication"
	NoteTypeProcedure  NoteType = "procedure"
	NoteTypeGeneral    NoteType = "general"
)

// MedicalNote is owned by a patient and cascade-deleted with it.
// AuthorID and CreatedAt are immutable after creation; every accepted
// content change is mirrored by a NoteEditEvent.
type MedicalNote struct {
	NoteID     string    `json:"note_id"`
	PatientID  string    `json:"patient_id"`
	Type       NoteType  `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteEditEvent is the immutable before/after record of one accepted edit.
// Rows are append-only and retrieved newest-first.
type NoteEditEvent struct {
	EventID         string    `json:"event_id"`
	NoteID          string    `json:"note_id"`
	EditedBy        string    `json:"edited_by"`
	EditedByName    string    `json:"edited_by_name"`
	EditedAt        time.Time `json:"edited_at"`
	PreviousTitle   string    `json:"previous_title"`
	NewTitle        string    `json:"new_title"`
	PreviousContent string    `json:"previous_content"`
	NewContent      string    `json:"new_content"`
}
