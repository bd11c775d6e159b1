package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clinicalh/contexts/clinical-care/records-service/application"
	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	httptransport "clinicalh/contexts/clinical-care/records-service/transport/http"
)

// Handler maps transport DTOs to application calls. The acting principal
// is supplied by the server layer from request headers.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ListPatientsHandler godoc
// @Summary List admitted patients
// @Description Returns the ward dashboard listing with per-patient due medication counts.
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Success 200 {object} httptransport.ListPatientsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients [get]
func (h Handler) ListPatientsHandler(ctx context.Context, principal entities.Principal) (httptransport.ListPatientsResponse, error) {
	summaries, err := h.Service.ListPatients(ctx, principal)
	if err != nil {
		return httptransport.ListPatientsResponse{}, err
	}
	items := make([]httptransport.PatientSummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, httptransport.PatientSummaryDTO{
			PatientID:  summary.PatientID,
			FullName:   summary.FullName,
			Age:        summary.Age,
			Gender:     summary.Gender,
			DocumentID: summary.DocumentID,
			Room:       summary.Room,
			Insurer:    summary.Insurer,
			Status:     string(summary.Status),
			MedsDue:    summary.MedsDue,
			AdmittedAt: summary.AdmittedAt.Format(time.RFC3339),
		})
	}
	return httptransport.ListPatientsResponse{Items: items}, nil
}

// GetPatientHandler godoc
// @Summary Get a patient record
// @Description Returns the patient with notes, medications and the shift evolution flag.
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Success 200 {object} httptransport.PatientDetailResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id} [get]
func (h Handler) GetPatientHandler(ctx context.Context, principal entities.Principal, patientID string) (httptransport.PatientDetailResponse, error) {
	record, err := h.Service.GetPatient(ctx, principal, patientID)
	if err != nil {
		return httptransport.PatientDetailResponse{}, err
	}
	return httptransport.PatientDetailResponse{
		Item:         mapPatient(record.Detail.Patient),
		Medications:  mapMedications(record.Detail.Medications),
		Notes:        mapNotes(record.Detail.Notes),
		MedsDue:      record.Detail.MedsDue,
		EvolutionDue: record.EvolutionDue,
	}, nil
}

// CreatePatientHandler godoc
// @Summary Admit a patient
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.CreatePatientRequest true "Patient intake data"
// @Success 201 {object} httptransport.PatientResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients [post]
func (h Handler) CreatePatientHandler(ctx context.Context, principal entities.Principal, req httptransport.CreatePatientRequest) (httptransport.PatientResponse, error) {
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return httptransport.PatientResponse{}, err
	}
	patient, err := h.Service.CreatePatient(ctx, principal, application.CreatePatientInput{
		FullName:        req.FullName,
		BirthDate:       birthDate,
		Age:             req.Age,
		Gender:          req.Gender,
		DocumentID:      req.DocumentID,
		Address:         req.Address,
		Insurer:         req.Insurer,
		Allergies:       req.Allergies,
		Diagnoses:       req.Diagnoses,
		PriorConditions: req.PriorConditions,
		Surgeries:       req.Surgeries,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		Room:            req.Room,
		Status:          req.Status,
	})
	if err != nil {
		return httptransport.PatientResponse{}, err
	}
	return httptransport.PatientResponse{Item: mapPatient(patient)}, nil
}

// UpdatePatientHandler godoc
// @Summary Update a patient record
// @Description Administrator-only replacement of mutable fields. Discharge state is not reachable here.
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Param request body httptransport.UpdatePatientRequest true "Replacement fields"
// @Success 200 {object} httptransport.PatientResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id} [patch]
func (h Handler) UpdatePatientHandler(ctx context.Context, principal entities.Principal, patientID string, req httptransport.UpdatePatientRequest) (httptransport.PatientResponse, error) {
	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return httptransport.PatientResponse{}, err
	}
	patient, err := h.Service.UpdatePatient(ctx, principal, application.UpdatePatientInput{
		PatientID:       patientID,
		FullName:        req.FullName,
		BirthDate:       birthDate,
		Age:             req.Age,
		Gender:          req.Gender,
		DocumentID:      req.DocumentID,
		Address:         req.Address,
		Insurer:         req.Insurer,
		Allergies:       req.Allergies,
		Diagnoses:       req.Diagnoses,
		PriorConditions: req.PriorConditions,
		Surgeries:       req.Surgeries,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		Room:            req.Room,
		Status:          req.Status,
	})
	if err != nil {
		return httptransport.PatientResponse{}, err
	}
	return httptransport.PatientResponse{Item: mapPatient(patient)}, nil
}

// DeletePatientHandler godoc
// @Summary Delete a patient record
// @Tags clinical-records
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Success 204
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id} [delete]
func (h Handler) DeletePatientHandler(ctx context.Context, principal entities.Principal, patientID string) error {
	return h.Service.DeletePatient(ctx, principal, patientID)
}

// DischargePatientHandler godoc
// @Summary Discharge a patient
// @Description One-way transition; records a system-authored discharge note atomically.
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Success 200 {object} httptransport.DischargePatientResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id}/discharge [post]
func (h Handler) DischargePatientHandler(ctx context.Context, principal entities.Principal, patientID string) (httptransport.DischargePatientResponse, error) {
	result, err := h.Service.DischargePatient(ctx, principal, patientID)
	if err != nil {
		return httptransport.DischargePatientResponse{}, err
	}
	return httptransport.DischargePatientResponse{
		Item: mapPatient(result.Patient),
		Note: mapNote(result.Note),
	}, nil
}

// EvolutionDueHandler godoc
// @Summary Check the shift evolution flag
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Success 200 {object} httptransport.EvolutionDueResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id}/evolution-due [get]
func (h Handler) EvolutionDueHandler(ctx context.Context, principal entities.Principal, patientID string) (httptransport.EvolutionDueResponse, error) {
	due, err := h.Service.EvolutionDue(ctx, principal, patientID)
	if err != nil {
		return httptransport.EvolutionDueResponse{}, err
	}
	return httptransport.EvolutionDueResponse{PatientID: patientID, EvolutionDue: due}, nil
}

// AddNoteHandler godoc
// @Summary Add a medical note
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Param request body httptransport.AddNoteRequest true "Note content"
// @Success 201 {object} httptransport.NoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id}/notes [post]
func (h Handler) AddNoteHandler(ctx context.Context, principal entities.Principal, patientID string, req httptransport.AddNoteRequest) (httptransport.NoteResponse, error) {
	note, err := h.Service.AddNote(ctx, principal, application.AddNoteInput{
		PatientID: patientID,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return httptransport.NoteResponse{}, err
	}
	return httptransport.NoteResponse{Item: mapNote(note)}, nil
}

// EditNoteHandler godoc
// @Summary Edit a medical note
// @Description Applies the edit policy and appends an immutable audit event with the pre-image.
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param note_id path string true "Note id"
// @Param request body httptransport.EditNoteRequest true "Replacement content"
// @Success 200 {object} httptransport.EditNoteResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/notes/{note_id} [put]
func (h Handler) EditNoteHandler(ctx context.Context, principal entities.Principal, noteID string, req httptransport.EditNoteRequest) (httptransport.EditNoteResponse, error) {
	result, err := h.Service.EditNote(ctx, principal, application.EditNoteInput{
		NoteID:     noteID,
		NewTitle:   req.Title,
		NewContent: req.Content,
	})
	if err != nil {
		return httptransport.EditNoteResponse{}, err
	}
	return httptransport.EditNoteResponse{
		Item:  mapNote(result.Note),
		Event: mapNoteEditEvent(result.Event),
	}, nil
}

// ListNoteEditsHandler godoc
// @Summary List the edit trail of a note
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param note_id path string true "Note id"
// @Success 200 {object} httptransport.ListNoteEditsResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/notes/{note_id}/edits [get]
func (h Handler) ListNoteEditsHandler(ctx context.Context, principal entities.Principal, noteID string) (httptransport.ListNoteEditsResponse, error) {
	events, err := h.Service.ListNoteEdits(ctx, principal, noteID)
	if err != nil {
		return httptransport.ListNoteEditsResponse{}, err
	}
	items := make([]httptransport.NoteEditEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, mapNoteEditEvent(event))
	}
	return httptransport.ListNoteEditsResponse{Items: items}, nil
}

// AddMedicationHandler godoc
// @Summary Prescribe a medication
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Param request body httptransport.AddMedicationRequest true "Prescription data"
// @Success 201 {object} httptransport.MedicationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id}/medications [post]
func (h Handler) AddMedicationHandler(ctx context.Context, principal entities.Principal, patientID string, req httptransport.AddMedicationRequest) (httptransport.MedicationResponse, error) {
	medication, err := h.Service.AddMedication(ctx, principal, application.AddMedicationInput{
		PatientID: patientID,
		Name:      req.Name,
		Dose:      req.Dose,
		Route:     req.Route,
		Frequency: req.Frequency,
		Status:    req.Status,
	})
	if err != nil {
		return httptransport.MedicationResponse{}, err
	}
	return httptransport.MedicationResponse{Item: mapMedication(medication)}, nil
}

// RemoveMedicationHandler godoc
// @Summary Remove a prescription
// @Tags clinical-records
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param patient_id path string true "Patient id"
// @Param medication_id path string true "Medication id"
// @Success 204
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/patients/{patient_id}/medications/{medication_id} [delete]
func (h Handler) RemoveMedicationHandler(ctx context.Context, principal entities.Principal, patientID string, medicationID string) error {
	return h.Service.RemoveMedication(ctx, principal, patientID, medicationID)
}

// AdministerMedicationHandler godoc
// @Summary Administer a medication
// @Description Compare-and-set transition to given; a concurrent duplicate receives a conflict.
// @Tags clinical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param medication_id path string true "Medication id"
// @Param request body httptransport.AdministerMedicationRequest false "Administration notes"
// @Success 200 {object} httptransport.AdministerMedicationResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/clinical/v1/medications/{medication_id}/administer [post]
func (h Handler) AdministerMedicationHandler(ctx context.Context, principal entities.Principal, medicationID string, req httptransport.AdministerMedicationRequest) (httptransport.AdministerMedicationResponse, error) {
	result, err := h.Service.AdministerMedication(ctx, principal, application.AdministerMedicationInput{
		MedicationID: medicationID,
		Notes:        req.Notes,
	})
	if err != nil {
		return httptransport.AdministerMedicationResponse{}, err
	}
	return httptransport.AdministerMedicationResponse{
		Item:  mapMedication(result.Medication),
		Event: mapAdministrationEvent(result.Event),
	}, nil
}

// ListAdministrationsHandler godoc
// @Summary List administrations of a medication
// @Tags clinical-records
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param medication_id path string true "Medication id"
// @Success 200 {object} httptransport.ListAdministrationsResponse
// @Router /api/clinical/v1/medications/{medication_id}/administrations [get]
func (h Handler) ListAdministrationsHandler(ctx context.Context, principal entities.Principal, medicationID string) (httptransport.ListAdministrationsResponse, error) {
	events, err := h.Service.ListAdministrations(ctx, principal, medicationID)
	if err != nil {
		return httptransport.ListAdministrationsResponse{}, err
	}
	items := make([]httptransport.AdministrationEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, mapAdministrationEvent(event))
	}
	return httptransport.ListAdministrationsResponse{Items: items}, nil
}

// CheckAccessHandler godoc
// @Summary Evaluate an access decision
// @Description Dry-run of the edit policy for a given action without mutating anything.
// @Tags access-control
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.AccessCheckRequest true "Action and optional resource"
// @Success 200 {object} httptransport.AccessCheckResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/access/v1/check [post]
func (h Handler) CheckAccessHandler(ctx context.Context, principal entities.Principal, req httptransport.AccessCheckRequest) (httptransport.AccessCheckResponse, error) {
	decision, err := h.Service.CheckAccess(ctx, principal, req.Action, req.ResourceID)
	if err != nil {
		return httptransport.AccessCheckResponse{}, err
	}
	return httptransport.AccessCheckResponse{
		Allowed:   decision.Allowed,
		Reason:    string(decision.Reason),
		CheckedAt: decision.CheckedAt.Format(time.RFC3339),
	}, nil
}

// ResolveRoleHandler godoc
// @Summary Resolve the caller's role
// @Tags access-control
// @Produce json
// @Security BearerAuth
// @Param X-Request-Id header string true "Request correlation id"
// @Param X-User-Id header string true "Acting user id"
// @Success 200 {object} httptransport.RoleResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/access/v1/role [get]
func (h Handler) ResolveRoleHandler(_ context.Context, principal entities.Principal) (httptransport.RoleResponse, error) {
	resolved, err := h.Service.ResolveRole(principal)
	if err != nil {
		return httptransport.RoleResponse{}, err
	}
	return httptransport.RoleResponse{
		UserID:      resolved.ID,
		Identity:    resolved.Identity,
		DisplayName: resolved.DisplayName,
		Role:        string(resolved.Role),
	}, nil
}

func mapPatient(patient entities.Patient) httptransport.PatientDTO {
	dto := httptransport.PatientDTO{
		PatientID:       patient.PatientID,
		FullName:        patient.FullName,
		Age:             patient.Age,
		Gender:          patient.Gender,
		DocumentID:      patient.DocumentID,
		Address:         patient.Address,
		Insurer:         patient.Insurer,
		Allergies:       patient.Allergies,
		Diagnoses:       patient.Diagnoses,
		PriorConditions: patient.PriorConditions,
		Surgeries:       patient.Surgeries,
		GuardianName:    patient.GuardianName,
		GuardianPhone:   patient.GuardianPhone,
		Room:            patient.Room,
		Status:          string(patient.Status),
		AdmittedAt:      patient.AdmittedAt.Format(time.RFC3339),
		UpdatedAt:       patient.UpdatedAt.Format(time.RFC3339),
	}
	if patient.BirthDate != nil {
		dto.BirthDate = patient.BirthDate.Format("2006-01-02")
	}
	return dto
}

func mapNote(note entities.MedicalNote) httptransport.NoteDTO {
	return httptransport.NoteDTO{
		NoteID:     note.NoteID,
		PatientID:  note.PatientID,
		Type:       string(note.Type),
		Title:      note.Title,
		Content:    note.Content,
		AuthorID:   note.AuthorID,
		AuthorName: note.AuthorName,
		CreatedAt:  note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  note.UpdatedAt.Format(time.RFC3339),
	}
}

func mapNotes(notes []entities.MedicalNote) []httptransport.NoteDTO {
	items := make([]httptransport.NoteDTO, 0, len(notes))
	for _, note := range notes {
		items = append(items, mapNote(note))
	}
	return items
}

func mapNoteEditEvent(event entities.NoteEditEvent) httptransport.NoteEditEventDTO {
	return httptransport.NoteEditEventDTO{
		EventID:         event.EventID,
		NoteID:          event.NoteID,
		EditedBy:        event.EditedBy,
		EditedByName:    event.EditedByName,
		EditedAt:        event.EditedAt.Format(time.RFC3339),
		PreviousTitle:   event.PreviousTitle,
		NewTitle:        event.NewTitle,
		PreviousContent: event.PreviousContent,
		NewContent:      event.NewContent,
	}
}

func mapMedication(medication entities.Medication) httptransport.MedicationDTO {
	return httptransport.MedicationDTO{
		MedicationID: medication.MedicationID,
		PatientID:    medication.PatientID,
		Name:         medication.Name,
		Dose:         medication.Dose,
		Route:        string(medication.Route),
		Frequency:    medication.Frequency,
		Status:       string(medication.Status),
		CreatedAt:    medication.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    medication.UpdatedAt.Format(time.RFC3339),
	}
}

func mapMedications(medications []entities.Medication) []httptransport.MedicationDTO {
	items := make([]httptransport.MedicationDTO, 0, len(medications))
	for _, medication := range medications {
		items = append(items, mapMedication(medication))
	}
	return items
}

func mapAdministrationEvent(event entities.MedicationAdministrationEvent) httptransport.AdministrationEventDTO {
	return httptransport.AdministrationEventDTO{
		EventID:            event.EventID,
		MedicationID:       event.MedicationID,
		AdministeredBy:     event.AdministeredBy,
		AdministeredByName: event.AdministeredByName,
		AdministeredAt:     event.AdministeredAt.Format(time.RFC3339),
		Notes:              event.Notes,
	}
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", domainerrors.ErrInvalidRequest)
	}
	return &parsed, nil
}
