package application

import (
	"context"
	"fmt"
	"strings"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/domain/services"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

// AddNoteInput is transport-agnostic note creation data.
type AddNoteInput struct {
	PatientID string
	Type      string
	Title     string
	Content   string
}

// EditNoteInput carries a note content replacement.
type EditNoteInput struct {
	NoteID     string
	NewTitle   string
	NewContent string
}

// AddNote creates a note authored by the acting principal. Author and
// creation time are fixed here and never change afterwards.
func (s Service) AddNote(
	ctx context.Context,
	principal entities.Principal,
	input AddNoteInput,
) (entities.MedicalNote, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return entities.MedicalNote{}, err
	}
	now := s.now()
	if decision := services.CanCreateNote(resolved.Role, now); !decision.Allowed {
		return entities.MedicalNote{}, denyError(decision)
	}

	if err := requireField(input.PatientID, "patient_id"); err != nil {
		return entities.MedicalNote{}, err
	}
	if err := requireField(input.Title, "title"); err != nil {
		return entities.MedicalNote{}, err
	}
	if err := requireField(input.Content, "content"); err != nil {
		return entities.MedicalNote{}, err
	}
	noteType, err := parseNoteType(input.Type)
	if err != nil {
		return entities.MedicalNote{}, err
	}

	noteID, err := s.newID(ctx)
	if err != nil {
		return entities.MedicalNote{}, err
	}

	note, err := s.Repo.AddNote(ctx, entities.MedicalNote{
		NoteID:     noteID,
		PatientID:  input.PatientID,
		Type:       noteType,
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
		AuthorID:   resolved.ID,
		AuthorName: resolved.DisplayName,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return entities.MedicalNote{}, err
	}

	ResolveLogger(s.Logger).Info("note created",
		"event", "records_note_created",
		"module", moduleName,
		"layer", "application",
		"note_id", note.NoteID,
		"patient_id", note.PatientID,
		"note_type", string(note.Type),
		"actor_id", resolved.ID,
	)
	return note, nil
}

// EditNote replaces a note's title and content after the edit policy
// allows it. The audit event is appended unconditionally for every
// accepted edit, including edits that leave the content unchanged: the
// trail records who touched the record and when, not just diffs.
func (s Service) EditNote(
	ctx context.Context,
	principal entities.Principal,
	input EditNoteInput,
) (ports.NoteEditResult, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return ports.NoteEditResult{}, err
	}
	if err := requireField(input.NoteID, "note_id"); err != nil {
		return ports.NoteEditResult{}, err
	}
	if err := requireField(input.NewTitle, "title"); err != nil {
		return ports.NoteEditResult{}, err
	}
	if err := requireField(input.NewContent, "content"); err != nil {
		return ports.NoteEditResult{}, err
	}

	note, err := s.Repo.GetNote(ctx, input.NoteID)
	if err != nil {
		return ports.NoteEditResult{}, err
	}

	now := s.now()
	decision := services.CanEditNote(resolved.Role, note, resolved, now)
	if !decision.Allowed {
		ResolveLogger(s.Logger).Warn("note edit denied",
			"event", "records_note_edit_denied",
			"module", moduleName,
			"layer", "application",
			"note_id", input.NoteID,
			"actor_id", resolved.ID,
			"role", string(resolved.Role),
			"reason", string(decision.Reason),
		)
		return ports.NoteEditResult{}, denyError(decision)
	}

	eventID, err := s.newID(ctx)
	if err != nil {
		return ports.NoteEditResult{}, err
	}
	outboxID, err := s.newID(ctx)
	if err != nil {
		return ports.NoteEditResult{}, err
	}

	result, err := s.Repo.EditNote(ctx, ports.NoteEditInput{
		NoteID:     input.NoteID,
		EventID:    eventID,
		OutboxID:   outboxID,
		NewTitle:   strings.TrimSpace(input.NewTitle),
		NewContent: input.NewContent,
		EditedBy:   resolved.ID,
		EditorName: resolved.DisplayName,
		EditedAt:   now,
	})
	if err != nil {
		return ports.NoteEditResult{}, err
	}

	ResolveLogger(s.Logger).Info("note edited",
		"event", "records_note_edited",
		"module", moduleName,
		"layer", "application",
		"note_id", input.NoteID,
		"edit_event_id", result.Event.EventID,
		"actor_id", resolved.ID,
	)
	return result, nil
}

// GetNote returns a single note snapshot. All authenticated roles may read.
func (s Service) GetNote(
	ctx context.Context,
	principal entities.Principal,
	noteID string,
) (entities.MedicalNote, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return entities.MedicalNote{}, err
	}
	if err := requireField(noteID, "note_id"); err != nil {
		return entities.MedicalNote{}, err
	}
	return s.Repo.GetNote(ctx, noteID)
}

// ListNoteEdits returns the append-only edit trail, newest first.
func (s Service) ListNoteEdits(
	ctx context.Context,
	principal entities.Principal,
	noteID string,
) ([]entities.NoteEditEvent, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return nil, err
	}
	if err := requireField(noteID, "note_id"); err != nil {
		return nil, err
	}
	return s.Repo.ListNoteEdits(ctx, noteID)
}

func parseNoteType(raw string) (entities.NoteType, error) {
	switch entities.NoteType(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return entities.NoteTypeGeneral, nil
	case entities.NoteTypeLab:
		return entities.NoteTypeLab, nil
	case entities.NoteTypeVitals:
		return entities.NoteTypeVitals, nil
	case entities.NoteTypeMedication:
		return entities.NoteTypeMedication, nil
	case entities.NoteTypeProcedure:
		return entities.NoteTypeProcedure, nil
	case entities.NoteTypeGeneral:
		return entities.NoteTypeGeneral, nil
	case "evolution":
		// The ward front sends "evolution" for the shift evolution note,
		// which is stored as the general type.
		return entities.NoteTypeGeneral, nil
	default:
		return "", fmt.Errorf("%w: unknown note type %q", domainerrors.ErrInvalidNoteType, raw)
	}
}
