package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/domain/services"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

// CreatePatientInput is transport-agnostic patient intake data.
type CreatePatientInput struct {
	FullName        string
	BirthDate       *time.Time
	Age             int
	Gender          string
	DocumentID      string
	Address         string
	Insurer         string
	Allergies       string
	Diagnoses       string
	PriorConditions string
	Surgeries       string
	GuardianName    string
	GuardianPhone   string
	Room            string
	Status          string
}

// UpdatePatientInput carries a full replacement of mutable patient fields.
type UpdatePatientInput struct {
	PatientID       string
	FullName        string
	BirthDate       *time.Time
	Age             int
	Gender          string
	DocumentID      string
	Address         string
	Insurer         string
	Allergies       string
	Diagnoses       string
	PriorConditions string
	Surgeries       string
	GuardianName    string
	GuardianPhone   string
	Room            string
	Status          string
}

// PatientRecord is the detail view plus the shift evolution flag computed
// for the caller's current instant.
type PatientRecord struct {
	Detail       ports.PatientDetail `json:"detail"`
	EvolutionDue bool                `json:"evolution_due"`
}

// ListPatients returns the dashboard listing with per-patient due
// medication counts. All authenticated roles may read.
func (s Service) ListPatients(ctx context.Context, principal entities.Principal) ([]ports.PatientSummary, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return nil, err
	}
	return s.Repo.ListPatients(ctx)
}

// GetPatient returns the full record with the evolution-due flag derived
// from the current shift window. The flag is recomputed on every read.
func (s Service) GetPatient(ctx context.Context, principal entities.Principal, patientID string) (PatientRecord, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return PatientRecord{}, err
	}
	if err := requireField(patientID, "patient_id"); err != nil {
		return PatientRecord{}, err
	}

	detail, err := s.Repo.GetPatient(ctx, patientID)
	if err != nil {
		return PatientRecord{}, err
	}
	return PatientRecord{
		Detail:       detail,
		EvolutionDue: services.IsEvolutionDue(detail.Notes, s.now(), s.zone()),
	}, nil
}

// EvolutionDue reports whether the patient still needs a qualifying note
// in the current shift.
func (s Service) EvolutionDue(ctx context.Context, principal entities.Principal, patientID string) (bool, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return false, err
	}
	if err := requireField(patientID, "patient_id"); err != nil {
		return false, err
	}

	notes, err := s.Repo.ListPatientNotes(ctx, patientID)
	if err != nil {
		return false, err
	}
	return services.IsEvolutionDue(notes, s.now(), s.zone()), nil
}

// CreatePatient admits a new patient. Administrators and clinicians may
// create; the room is auto-assigned by storage when left blank.
func (s Service) CreatePatient(
	ctx context.Context,
	principal entities.Principal,
	input CreatePatientInput,
) (entities.Patient, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return entities.Patient{}, err
	}
	now := s.now()
	if decision := services.CanCreatePatient(resolved.Role, now); !decision.Allowed {
		return entities.Patient{}, denyError(decision)
	}

	if err := requireField(input.FullName, "full_name"); err != nil {
		return entities.Patient{}, err
	}
	if err := requireField(input.Insurer, "insurer"); err != nil {
		return entities.Patient{}, err
	}
	if err := requireField(input.GuardianName, "guardian_name"); err != nil {
		return entities.Patient{}, err
	}
	if err := requireField(input.GuardianPhone, "guardian_phone"); err != nil {
		return entities.Patient{}, err
	}
	status, err := parsePatientStatus(input.Status, entities.PatientStatusStable)
	if err != nil {
		return entities.Patient{}, err
	}
	if status == entities.PatientStatusDischarged {
		return entities.Patient{}, fmt.Errorf("%w: patients cannot be admitted as discharged", domainerrors.ErrInvalidStatus)
	}

	patientID, err := s.newID(ctx)
	if err != nil {
		return entities.Patient{}, err
	}

	patient := entities.Patient{
		PatientID:       patientID,
		FullName:        strings.TrimSpace(input.FullName),
		BirthDate:       input.BirthDate,
		Age:             input.Age,
		Gender:          defaultString(input.Gender, "Masculino"),
		DocumentID:      strings.TrimSpace(input.DocumentID),
		Address:         input.Address,
		Insurer:         strings.TrimSpace(input.Insurer),
		Allergies:       input.Allergies,
		Diagnoses:       input.Diagnoses,
		PriorConditions: input.PriorConditions,
		Surgeries:       input.Surgeries,
		GuardianName:    strings.TrimSpace(input.GuardianName),
		GuardianPhone:   strings.TrimSpace(input.GuardianPhone),
		Room:            strings.TrimSpace(input.Room),
		Status:          status,
		AdmittedAt:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.Repo.CreatePatient(ctx, patient)
	if err != nil {
		return entities.Patient{}, err
	}

	ResolveLogger(s.Logger).Info("patient admitted",
		"event", "records_patient_created",
		"module", moduleName,
		"layer", "application",
		"patient_id", created.PatientID,
		"actor_id", resolved.ID,
		"role", string(resolved.Role),
	)
	return created, nil
}

// UpdatePatient replaces mutable patient fields. Administrators only.
// Status changes involving the discharged state must go through the
// discharge workflow; a discharged patient's status is frozen.
func (s Service) UpdatePatient(
	ctx context.Context,
	principal entities.Principal,
	input UpdatePatientInput,
) (entities.Patient, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return entities.Patient{}, err
	}
	now := s.now()
	if decision := services.CanUpdatePatient(resolved.Role, now); !decision.Allowed {
		return entities.Patient{}, denyError(decision)
	}
	if err := requireField(input.PatientID, "patient_id"); err != nil {
		return entities.Patient{}, err
	}
	if err := requireField(input.FullName, "full_name"); err != nil {
		return entities.Patient{}, err
	}

	detail, err := s.Repo.GetPatient(ctx, input.PatientID)
	if err != nil {
		return entities.Patient{}, err
	}
	existing := detail.Patient

	status, err := parsePatientStatus(input.Status, existing.Status)
	if err != nil {
		return entities.Patient{}, err
	}
	if existing.Status == entities.PatientStatusDischarged && status != entities.PatientStatusDischarged {
		return entities.Patient{}, domainerrors.ErrAlreadyDischarged
	}
	if existing.Status != entities.PatientStatusDischarged && status == entities.PatientStatusDischarged {
		return entities.Patient{}, fmt.Errorf("%w: discharge must use the discharge operation", domainerrors.ErrInvalidStatus)
	}

	updated := existing
	updated.FullName = strings.TrimSpace(input.FullName)
	updated.BirthDate = input.BirthDate
	updated.Age = input.Age
	updated.Gender = defaultString(input.Gender, existing.Gender)
	updated.DocumentID = strings.TrimSpace(input.DocumentID)
	updated.Address = input.Address
	updated.Insurer = defaultString(input.Insurer, existing.Insurer)
	updated.Allergies = input.Allergies
	updated.Diagnoses = input.Diagnoses
	updated.PriorConditions = input.PriorConditions
	updated.Surgeries = input.Surgeries
	updated.GuardianName = defaultString(input.GuardianName, existing.GuardianName)
	updated.GuardianPhone = defaultString(input.GuardianPhone, existing.GuardianPhone)
	updated.Room = defaultString(input.Room, existing.Room)
	updated.Status = status
	updated.UpdatedAt = now

	saved, err := s.Repo.UpdatePatient(ctx, updated)
	if err != nil {
		return entities.Patient{}, err
	}

	ResolveLogger(s.Logger).Info("patient updated",
		"event", "records_patient_updated",
		"module", moduleName,
		"layer", "application",
		"patient_id", saved.PatientID,
		"actor_id", resolved.ID,
	)
	return saved, nil
}

// DeletePatient removes a patient and, by ownership, its notes,
// medications and their audit trails. Administrators only.
func (s Service) DeletePatient(ctx context.Context, principal entities.Principal, patientID string) error {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return err
	}
	if decision := services.CanDeletePatient(resolved.Role, s.now()); !decision.Allowed {
		return denyError(decision)
	}
	if err := requireField(patientID, "patient_id"); err != nil {
		return err
	}

	if err := s.Repo.DeletePatient(ctx, patientID); err != nil {
		return err
	}

	ResolveLogger(s.Logger).Info("patient deleted",
		"event", "records_patient_deleted",
		"module", moduleName,
		"layer", "application",
		"patient_id", patientID,
		"actor_id", resolved.ID,
	)
	return nil
}

// DischargePatient performs the one-way status transition and records the
// system-authored discharge note in the same transaction. Discharging an
// already-discharged patient is a conflict with no side effects.
func (s Service) DischargePatient(
	ctx context.Context,
	principal entities.Principal,
	patientID string,
) (ports.DischargeResult, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return ports.DischargeResult{}, err
	}
	now := s.now()
	if decision := services.CanDischargePatient(resolved.Role, now); !decision.Allowed {
		return ports.DischargeResult{}, denyError(decision)
	}
	if err := requireField(patientID, "patient_id"); err != nil {
		return ports.DischargeResult{}, err
	}

	noteID, err := s.newID(ctx)
	if err != nil {
		return ports.DischargeResult{}, err
	}
	outboxID, err := s.newID(ctx)
	if err != nil {
		return ports.DischargeResult{}, err
	}

	result, err := s.Repo.DischargePatient(ctx, ports.DischargeInput{
		PatientID: patientID,
		NoteID:    noteID,
		OutboxID:  outboxID,
		Note: entities.MedicalNote{
			NoteID:     noteID,
			PatientID:  patientID,
			Type:       entities.NoteTypeGeneral,
			Title:      "Discharge",
			Content:    fmt.Sprintf("Patient discharged by %s at %s.", resolved.DisplayName, now.Format(time.RFC3339)),
			AuthorID:   resolved.ID,
			AuthorName: resolved.DisplayName,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		DischargedAt: now,
	})
	if err != nil {
		return ports.DischargeResult{}, err
	}

	ResolveLogger(s.Logger).Info("patient discharged",
		"event", "records_patient_discharged",
		"module", moduleName,
		"layer", "application",
		"patient_id", patientID,
		"actor_id", resolved.ID,
		"note_id", result.Note.NoteID,
	)
	return result, nil
}

func parsePatientStatus(raw string, fallback entities.PatientStatus) (entities.PatientStatus, error) {
	switch entities.PatientStatus(strings.TrimSpace(raw)) {
	case "":
		return fallback, nil
	case entities.PatientStatusStable:
		return entities.PatientStatusStable, nil
	case entities.PatientStatusUnderObservation:
		return entities.PatientStatusUnderObservation, nil
	case entities.PatientStatusDischarged:
		return entities.PatientStatusDischarged, nil
	default:
		return "", fmt.Errorf("%w: unknown patient status %q", domainerrors.ErrInvalidStatus, raw)
	}
}

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
