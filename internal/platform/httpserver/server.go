package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	recordsservice "clinicalh/contexts/clinical-care/records-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "clinicalh/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	records recordsservice.Module
}

func New(records recordsservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		records: records,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/clinical/v1/patients", s.handleListPatients)
	s.mux.HandleFunc("POST /api/clinical/v1/patients", s.handleCreatePatient)
	s.mux.HandleFunc("GET /api/clinical/v1/patients/{patient_id}", s.handleGetPatient)
	s.mux.HandleFunc("PATCH /api/clinical/v1/patients/{patient_id}", s.handleUpdatePatient)
	s.mux.HandleFunc("DELETE /api/clinical/v1/patients/{patient_id}", s.handleDeletePatient)
	s.mux.HandleFunc("POST /api/clinical/v1/patients/{patient_id}/discharge", s.handleDischargePatient)
	s.mux.HandleFunc("GET /api/clinical/v1/patients/{patient_id}/evolution-due", s.handleEvolutionDue)

	s.mux.HandleFunc("POST /api/clinical/v1/patients/{patient_id}/notes", s.handleAddNote)
	s.mux.HandleFunc("PUT /api/clinical/v1/notes/{note_id}", s.handleEditNote)
	s.mux.HandleFunc("GET /api/clinical/v1/notes/{note_id}/edits", s.handleListNoteEdits)

	s.mux.HandleFunc("POST /api/clinical/v1/patients/{patient_id}/medications", s.handleAddMedication)
	s.mux.HandleFunc("DELETE /api/clinical/v1/patients/{patient_id}/medications/{medication_id}", s.handleRemoveMedication)
	s.mux.HandleFunc("POST /api/clinical/v1/medications/{medication_id}/administer", s.handleAdministerMedication)
	s.mux.HandleFunc("GET /api/clinical/v1/medications/{medication_id}/administrations", s.handleListAdministrations)

	s.mux.HandleFunc("POST /api/access/v1/check", s.handleCheckAccess)
	s.mux.HandleFunc("GET /api/access/v1/role", s.handleResolveRole)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
