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

// AddMedicationInput is transport-agnostic prescription data.
type AddMedicationInput struct {
	PatientID string
	Name      string
	Dose      string
	Route     string
	Frequency string
	Status    string
}

// AdministerMedicationInput marks one dose as given.
type AdministerMedicationInput struct {
	MedicationID string
	Notes        string
}

// AddMedication prescribes a dose for a patient. A repeat dose of the same
// drug is a fresh row; rows never return from given to available.
func (s Service) AddMedication(
	ctx context.Context,
	principal entities.Principal,
	input AddMedicationInput,
) (entities.Medication, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return entities.Medication{}, err
	}
	now := s.now()
	if decision := services.CanManageMedication(resolved.Role, now); !decision.Allowed {
		return entities.Medication{}, denyError(decision)
	}

	if err := requireField(input.PatientID, "patient_id"); err != nil {
		return entities.Medication{}, err
	}
	if err := requireField(input.Name, "name"); err != nil {
		return entities.Medication{}, err
	}
	if err := requireField(input.Dose, "dose"); err != nil {
		return entities.Medication{}, err
	}
	route, err := parseMedicationRoute(input.Route)
	if err != nil {
		return entities.Medication{}, err
	}
	status, err := parseInitialMedicationStatus(input.Status)
	if err != nil {
		return entities.Medication{}, err
	}

	medicationID, err := s.newID(ctx)
	if err != nil {
		return entities.Medication{}, err
	}

	medication, err := s.Repo.AddMedication(ctx, entities.Medication{
		MedicationID: medicationID,
		PatientID:    input.PatientID,
		Name:         strings.TrimSpace(input.Name),
		Dose:         strings.TrimSpace(input.Dose),
		Route:        route,
		Frequency:    strings.TrimSpace(input.Frequency),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return entities.Medication{}, err
	}

	ResolveLogger(s.Logger).Info("medication added",
		"event", "records_medication_added",
		"module", moduleName,
		"layer", "application",
		"medication_id", medication.MedicationID,
		"patient_id", medication.PatientID,
		"actor_id", resolved.ID,
	)
	return medication, nil
}

// RemoveMedication deletes a prescription row. Administration events for
// the row are kept; the trail outlives the prescription.
func (s Service) RemoveMedication(
	ctx context.Context,
	principal entities.Principal,
	patientID string,
	medicationID string,
) error {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return err
	}
	if decision := services.CanManageMedication(resolved.Role, s.now()); !decision.Allowed {
		return denyError(decision)
	}
	if err := requireField(patientID, "patient_id"); err != nil {
		return err
	}
	if err := requireField(medicationID, "medication_id"); err != nil {
		return err
	}

	if err := s.Repo.RemoveMedication(ctx, patientID, medicationID); err != nil {
		return err
	}

	ResolveLogger(s.Logger).Info("medication removed",
		"event", "records_medication_removed",
		"module", moduleName,
		"layer", "application",
		"medication_id", medicationID,
		"patient_id", patientID,
		"actor_id", resolved.ID,
	)
	return nil
}

// AdministerMedication transitions a medication to given exactly once.
// The status check and the transition are one compare-and-set inside the
// repository, so of two concurrent administrations exactly one succeeds
// and the other observes ErrAlreadyAdministered.
func (s Service) AdministerMedication(
	ctx context.Context,
	principal entities.Principal,
	input AdministerMedicationInput,
) (ports.AdministerResult, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return ports.AdministerResult{}, err
	}
	now := s.now()
	if decision := services.CanManageMedication(resolved.Role, now); !decision.Allowed {
		return ports.AdministerResult{}, denyError(decision)
	}
	if err := requireField(input.MedicationID, "medication_id"); err != nil {
		return ports.AdministerResult{}, err
	}

	eventID, err := s.newID(ctx)
	if err != nil {
		return ports.AdministerResult{}, err
	}
	outboxID, err := s.newID(ctx)
	if err != nil {
		return ports.AdministerResult{}, err
	}

	result, err := s.Repo.AdministerMedication(ctx, ports.AdministerInput{
		MedicationID:       input.MedicationID,
		EventID:            eventID,
		OutboxID:           outboxID,
		AdministeredBy:     resolved.ID,
		AdministeredByName: resolved.DisplayName,
		Notes:              strings.TrimSpace(input.Notes),
		AdministeredAt:     now,
	})
	if err != nil {
		return ports.AdministerResult{}, err
	}

	ResolveLogger(s.Logger).Info("medication administered",
		"event", "records_medication_administered",
		"module", moduleName,
		"layer", "application",
		"medication_id", input.MedicationID,
		"administration_event_id", result.Event.EventID,
		"actor_id", resolved.ID,
	)
	return result, nil
}

// ListAdministrations returns the administration trail, newest first.
func (s Service) ListAdministrations(
	ctx context.Context,
	principal entities.Principal,
	medicationID string,
) ([]entities.MedicationAdministrationEvent, error) {
	if _, err := s.resolvePrincipal(principal); err != nil {
		return nil, err
	}
	if err := requireField(medicationID, "medication_id"); err != nil {
		return nil, err
	}
	return s.Repo.ListAdministrations(ctx, medicationID)
}

func parseMedicationRoute(raw string) (entities.MedicationRoute, error) {
	switch entities.MedicationRoute(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return entities.RouteOral, nil
	case entities.RouteOral:
		return entities.RouteOral, nil
	case entities.RouteIntravenous:
		return entities.RouteIntravenous, nil
	case entities.RouteIntramuscular:
		return entities.RouteIntramuscular, nil
	case entities.RouteSubcutaneous:
		return entities.RouteSubcutaneous, nil
	case entities.RouteTopical:
		return entities.RouteTopical, nil
	default:
		return "", fmt.Errorf("%w: unknown route %q", domainerrors.ErrInvalidRoute, raw)
	}
}

// parseInitialMedicationStatus rejects given on creation; a medication is
// only marked given through the administer operation.
func parseInitialMedicationStatus(raw string) (entities.MedicationStatus, error) {
	switch entities.MedicationStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return entities.MedicationStatusAvailable, nil
	case entities.MedicationStatusAvailable:
		return entities.MedicationStatusAvailable, nil
	case entities.MedicationStatusDue:
		return entities.MedicationStatusDue, nil
	default:
		return "", fmt.Errorf("%w: invalid initial medication status %q", domainerrors.ErrInvalidStatus, raw)
	}
}
