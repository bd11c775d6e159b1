package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	recordserrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	recordshttp "clinicalh/contexts/clinical-care/records-service/transport/http"
)

func writeRecordsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, recordshttp.ErrorResponse{Code: code, Message: message})
}

func writeRecordsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recordserrors.ErrMissingPrincipal):
		writeRecordsError(w, http.StatusUnauthorized, "missing_principal", err.Error())
	case errors.Is(err, recordserrors.ErrRoleDenied):
		writeRecordsError(w, http.StatusForbidden, "role_denied", err.Error())
	case errors.Is(err, recordserrors.ErrNotOwner):
		writeRecordsError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, recordserrors.ErrEditWindowExpired):
		writeRecordsError(w, http.StatusForbidden, "edit_window_expired", err.Error())
	case errors.Is(err, recordserrors.ErrPatientNotFound):
		writeRecordsError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, recordserrors.ErrNoteNotFound):
		writeRecordsError(w, http.StatusNotFound, "note_not_found", err.Error())
	case errors.Is(err, recordserrors.ErrMedicationNotFound):
		writeRecordsError(w, http.StatusNotFound, "medication_not_found", err.Error())
	case errors.Is(err, recordserrors.ErrAlreadyDischarged):
		writeRecordsError(w, http.StatusConflict, "already_discharged", err.Error())
	case errors.Is(err, recordserrors.ErrAlreadyAdministered):
		writeRecordsError(w, http.StatusConflict, "already_administered", err.Error())
	case errors.Is(err, recordserrors.ErrInvalidNoteType):
		writeRecordsError(w, http.StatusBadRequest, "invalid_note_type", err.Error())
	case errors.Is(err, recordserrors.ErrInvalidRoute):
		writeRecordsError(w, http.StatusBadRequest, "invalid_route", err.Error())
	case errors.Is(err, recordserrors.ErrInvalidStatus):
		writeRecordsError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, recordserrors.ErrInvalidRequest):
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeRecordsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireRecordsAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeRecordsError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	return true
}

func requireRecordsRequestID(w http.ResponseWriter, r *http.Request) bool {
	if strings.TrimSpace(r.Header.Get("X-Request-Id")) == "" {
		writeRecordsError(w, http.StatusBadRequest, "missing_request_id", "X-Request-Id header is required")
		return false
	}
	return true
}

// recordsPrincipal builds the caller principal from identity headers. The
// role is never read from the request; the records service recomputes it
// from the identity on every call.
func recordsPrincipal(r *http.Request) entities.Principal {
	return entities.Principal{
		ID:          strings.TrimSpace(r.Header.Get("X-User-Id")),
		Identity:    strings.TrimSpace(r.Header.Get("X-User-Identity")),
		DisplayName: strings.TrimSpace(r.Header.Get("X-User-Name")),
	}
}

func requireRecordsHeaders(w http.ResponseWriter, r *http.Request) bool {
	return requireRecordsAuthorization(w, r) && requireRecordsRequestID(w, r)
}

func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.ListPatientsHandler(r.Context(), recordsPrincipal(r))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.GetPatientHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.CreatePatientHandler(r.Context(), recordsPrincipal(r), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.UpdatePatientHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	if err := s.records.Handler.DeletePatientHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id")); err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDischargePatient(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.DischargePatientHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvolutionDue(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.EvolutionDueHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.AddNoteHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.EditNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.EditNoteHandler(r.Context(), recordsPrincipal(r), r.PathValue("note_id"), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListNoteEdits(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.ListNoteEditsHandler(r.Context(), recordsPrincipal(r), r.PathValue("note_id"))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddMedication(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.AddMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.AddMedicationHandler(r.Context(), recordsPrincipal(r), r.PathValue("patient_id"), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveMedication(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	err := s.records.Handler.RemoveMedicationHandler(
		r.Context(),
		recordsPrincipal(r),
		r.PathValue("patient_id"),
		r.PathValue("medication_id"),
	)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdministerMedication(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.AdministerMedicationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.records.Handler.AdministerMedicationHandler(r.Context(), recordsPrincipal(r), r.PathValue("medication_id"), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAdministrations(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.ListAdministrationsHandler(r.Context(), recordsPrincipal(r), r.PathValue("medication_id"))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckAccess(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	var req recordshttp.AccessCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordsError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.CheckAccessHandler(r.Context(), recordsPrincipal(r), req)
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveRole(w http.ResponseWriter, r *http.Request) {
	if !requireRecordsHeaders(w, r) {
		return
	}

	resp, err := s.records.Handler.ResolveRoleHandler(r.Context(), recordsPrincipal(r))
	if err != nil {
		writeRecordsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
