package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"clinicalh/contexts/clinical-care/records-service/adapters/memory"
	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/domain/services"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type sequentialIDs struct {
	next int
}

func (g *sequentialIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func newTestService(now time.Time) (Service, *memory.Store, *fixedClock) {
	store := memory.NewStore()
	clock := &fixedClock{now: now}
	service := Service{
		Repo:        store,
		Clock:       clock,
		IDGenerator: &sequentialIDs{},
		Roles: services.RoleResolver{
			AdministratorIdentity: "superuser",
			ReadOnlyIdentity:      "viewer",
		},
		ClinicZone: time.UTC,
	}
	return service, store, clock
}

func admitPatient(t *testing.T, service Service, actor entities.Principal) entities.Patient {
	t.Helper()
	patient, err := service.CreatePatient(context.Background(), actor, CreatePatientInput{
		FullName:      "Ana Torres",
		Age:           7,
		Insurer:       "Sura",
		GuardianName:  "Luz Torres",
		GuardianPhone: "3001234567",
	})
	if err != nil {
		t.Fatalf("create patient failed: %v", err)
	}
	return patient
}

var (
	admin     = entities.Principal{ID: "u-admin", Identity: "superuser", DisplayName: "Root"}
	viewer    = entities.Principal{ID: "u-viewer", Identity: "viewer", DisplayName: "Auditor"}
	clinician = entities.Principal{ID: "u-clin-1", Identity: "mgomez", DisplayName: "Dr. Gomez"}
	colleague = entities.Principal{ID: "u-clin-2", Identity: "plopez", DisplayName: "Dr. Lopez"}
)

func TestNoOpEditStillAppendsAuditEvent(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	note, err := service.AddNote(context.Background(), clinician, AddNoteInput{
		PatientID: patient.PatientID,
		Type:      "vitals",
		Title:     "Morning vitals",
		Content:   "Temp 36.8",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	result, err := service.EditNote(context.Background(), clinician, EditNoteInput{
		NoteID:     note.NoteID,
		NewTitle:   note.Title,
		NewContent: note.Content,
	})
	if err != nil {
		t.Fatalf("no-op edit must be accepted, got %v", err)
	}
	if result.Event.PreviousContent != result.Event.NewContent {
		t.Fatalf("expected identical pre and new content, got %+v", result.Event)
	}

	events, err := service.ListNoteEdits(context.Background(), clinician, note.NoteID)
	if err != nil {
		t.Fatalf("list edits failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one audit event for no-op edit, got %d", len(events))
	}
}

func TestReadOnlyPrincipalLeavesNoTrace(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	service, store, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	note, err := service.AddNote(context.Background(), clinician, AddNoteInput{
		PatientID: patient.PatientID,
		Title:     "Plan",
		Content:   "Observation",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	if _, err := service.CreatePatient(context.Background(), viewer, CreatePatientInput{
		FullName: "X", Insurer: "Y", GuardianName: "Z", GuardianPhone: "1",
	}); !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("expected role denial on create, got %v", err)
	}
	if _, err := service.EditNote(context.Background(), viewer, EditNoteInput{
		NoteID: note.NoteID, NewTitle: "t", NewContent: "c",
	}); !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("expected role denial on edit, got %v", err)
	}
	if _, err := service.AdministerMedication(context.Background(), viewer, AdministerMedicationInput{
		MedicationID: "med-x",
	}); !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("expected role denial on administer, got %v", err)
	}

	events, err := service.ListNoteEdits(context.Background(), viewer, note.NoteID)
	if err != nil {
		t.Fatalf("read path must stay open to read-only, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("denied operations must not append audit events, got %d", len(events))
	}
	if store.PendingOutboxCount() != 0 {
		t.Fatalf("denied operations must not enqueue outbox rows, got %d", store.PendingOutboxCount())
	}

	got, err := service.GetNote(context.Background(), viewer, note.NoteID)
	if err != nil {
		t.Fatalf("get note failed: %v", err)
	}
	if got.Content != "Observation" {
		t.Fatalf("denied edit must not change content, got %q", got.Content)
	}
}

func TestEditWindowBoundaryThroughService(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	service, _, clock := newTestService(now)
	patient := admitPatient(t, service, clinician)

	note, err := service.AddNote(context.Background(), clinician, AddNoteInput{
		PatientID: patient.PatientID,
		Title:     "Plan",
		Content:   "v1",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	clock.now = now.Add(services.NoteEditWindow)
	if _, err := service.EditNote(context.Background(), clinician, EditNoteInput{
		NoteID: note.NoteID, NewTitle: "Plan", NewContent: "v2",
	}); err != nil {
		t.Fatalf("edit at exactly the window must be allowed, got %v", err)
	}

	clock.now = now.Add(services.NoteEditWindow + time.Second)
	_, err = service.EditNote(context.Background(), clinician, EditNoteInput{
		NoteID: note.NoteID, NewTitle: "Plan", NewContent: "v3",
	})
	if !errors.Is(err, domainerrors.ErrEditWindowExpired) {
		t.Fatalf("expected expired window, got %v", err)
	}

	// The administrator override has no window.
	if _, err := service.EditNote(context.Background(), admin, EditNoteInput{
		NoteID: note.NoteID, NewTitle: "Plan", NewContent: "v3",
	}); err != nil {
		t.Fatalf("administrator edit must ignore the window, got %v", err)
	}
}

func TestClinicianCannotEditColleagueNote(t *testing.T) {
	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	note, err := service.AddNote(context.Background(), clinician, AddNoteInput{
		PatientID: patient.PatientID,
		Title:     "Plan",
		Content:   "v1",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	_, err = service.EditNote(context.Background(), colleague, EditNoteInput{
		NoteID: note.NoteID, NewTitle: "Plan", NewContent: "v2",
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected ownership denial, got %v", err)
	}
}

func TestDischargeAppendsOneSystemNoteAndIsOneWay(t *testing.T) {
	now := time.Date(2026, time.April, 2, 16, 30, 0, 0, time.UTC)
	service, store, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	result, err := service.DischargePatient(context.Background(), clinician, patient.PatientID)
	if err != nil {
		t.Fatalf("discharge failed: %v", err)
	}
	if result.Patient.Status != entities.PatientStatusDischarged {
		t.Fatalf("expected discharged status, got %s", result.Patient.Status)
	}
	if result.Note.Title != "Discharge" || result.Note.Type != entities.NoteTypeGeneral {
		t.Fatalf("unexpected system note: %+v", result.Note)
	}
	if !strings.Contains(result.Note.Content, "Dr. Gomez") {
		t.Fatalf("system note must name the discharging principal, got %q", result.Note.Content)
	}

	record, err := service.GetPatient(context.Background(), viewer, patient.PatientID)
	if err != nil {
		t.Fatalf("get patient failed: %v", err)
	}
	if len(record.Detail.Notes) != 1 {
		t.Fatalf("expected exactly one system note, got %d", len(record.Detail.Notes))
	}

	if _, err := service.DischargePatient(context.Background(), admin, patient.PatientID); !errors.Is(err, domainerrors.ErrAlreadyDischarged) {
		t.Fatalf("expected conflict on repeat discharge, got %v", err)
	}
	after, err := service.GetPatient(context.Background(), viewer, patient.PatientID)
	if err != nil {
		t.Fatalf("get patient failed: %v", err)
	}
	if len(after.Detail.Notes) != 1 {
		t.Fatalf("conflicted discharge must not add a note, got %d", len(after.Detail.Notes))
	}
	if store.PendingOutboxCount() != 1 {
		t.Fatalf("expected one outbox row, got %d", store.PendingOutboxCount())
	}
}

func TestUpdatePatientCannotCrossDischargeBoundary(t *testing.T) {
	now := time.Date(2026, time.April, 2, 16, 30, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	if _, err := service.UpdatePatient(context.Background(), clinician, UpdatePatientInput{
		PatientID: patient.PatientID, FullName: patient.FullName,
	}); !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("clinician update must be denied, got %v", err)
	}

	if _, err := service.UpdatePatient(context.Background(), admin, UpdatePatientInput{
		PatientID: patient.PatientID,
		FullName:  patient.FullName,
		Status:    string(entities.PatientStatusDischarged),
	}); !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("update must not discharge, got %v", err)
	}

	if _, err := service.DischargePatient(context.Background(), admin, patient.PatientID); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}
	if _, err := service.UpdatePatient(context.Background(), admin, UpdatePatientInput{
		PatientID: patient.PatientID,
		FullName:  patient.FullName,
		Status:    string(entities.PatientStatusStable),
	}); !errors.Is(err, domainerrors.ErrAlreadyDischarged) {
		t.Fatalf("discharged status must be frozen, got %v", err)
	}
}

func TestAdministerMedicationRejectsSecondAttempt(t *testing.T) {
	now := time.Date(2026, time.April, 3, 8, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)

	medication, err := service.AddMedication(context.Background(), clinician, AddMedicationInput{
		PatientID: patient.PatientID,
		Name:      "Amoxicillin",
		Dose:      "250mg",
		Route:     "vo",
		Status:    "due",
	})
	if err != nil {
		t.Fatalf("add medication failed: %v", err)
	}
	if medication.Route != entities.RouteOral {
		t.Fatalf("expected normalized route VO, got %s", medication.Route)
	}

	first, err := service.AdministerMedication(context.Background(), clinician, AdministerMedicationInput{
		MedicationID: medication.MedicationID,
		Notes:        "with food",
	})
	if err != nil {
		t.Fatalf("administer failed: %v", err)
	}
	if first.Medication.Status != entities.MedicationStatusGiven {
		t.Fatalf("expected given, got %s", first.Medication.Status)
	}

	_, err = service.AdministerMedication(context.Background(), colleague, AdministerMedicationInput{
		MedicationID: medication.MedicationID,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyAdministered) {
		t.Fatalf("expected conflict, got %v", err)
	}

	events, err := service.ListAdministrations(context.Background(), viewer, medication.MedicationID)
	if err != nil {
		t.Fatalf("list administrations failed: %v", err)
	}
	if len(events) != 1 || events[0].Notes != "with food" {
		t.Fatalf("expected one administration event, got %+v", events)
	}
}

func TestCheckAccessCoversEveryAction(t *testing.T) {
	now := time.Date(2026, time.April, 3, 8, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	patient := admitPatient(t, service, clinician)
	note, err := service.AddNote(context.Background(), clinician, AddNoteInput{
		PatientID: patient.PatientID, Title: "Plan", Content: "v1",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	cases := []struct {
		action    string
		principal entities.Principal
		resource  string
		allowed   bool
		reason    entities.DenyReason
	}{
		{"patient.create", clinician, "", true, ""},
		{"patient.update", clinician, "", false, entities.DenyReasonRole},
		{"patient.delete", admin, "", true, ""},
		{"patient.discharge", viewer, "", false, entities.DenyReasonRole},
		{"medication.manage", clinician, "", true, ""},
		{"note.create", viewer, "", false, entities.DenyReasonRole},
		{"note.edit", clinician, note.NoteID, true, ""},
		{"note.edit", colleague, note.NoteID, false, entities.DenyReasonOwnership},
	}

	for _, tc := range cases {
		decision, err := service.CheckAccess(context.Background(), tc.principal, tc.action, tc.resource)
		if err != nil {
			t.Fatalf("%s: check failed: %v", tc.action, err)
		}
		if decision.Allowed != tc.allowed || decision.Reason != tc.reason {
			t.Fatalf("%s for %s: got %+v", tc.action, tc.principal.Identity, decision)
		}
	}

	if _, err := service.CheckAccess(context.Background(), clinician, "unknown.action", ""); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for unknown action, got %v", err)
	}
}

func TestResolveRoleRecomputesFromIdentity(t *testing.T) {
	now := time.Date(2026, time.April, 3, 8, 0, 0, 0, time.UTC)
	service, _, _ := newTestService(now)

	spoofed := entities.Principal{ID: "u-1", Identity: "mgomez", Role: entities.RoleAdministrator}
	resolved, err := service.ResolveRole(spoofed)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Role != entities.RoleClinician {
		t.Fatalf("transport-supplied role must be ignored, got %s", resolved.Role)
	}

	if _, err := service.ResolveRole(entities.Principal{}); !errors.Is(err, domainerrors.ErrMissingPrincipal) {
		t.Fatalf("expected missing principal, got %v", err)
	}
}
