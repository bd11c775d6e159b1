package unit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	recordsservice "clinicalh/contexts/clinical-care/records-service"
	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	httptransport "clinicalh/contexts/clinical-care/records-service/transport/http"
)

func newRecordsModule() recordsservice.Module {
	return recordsservice.NewInMemoryModule(nil, slog.Default())
}

func adminPrincipal() entities.Principal {
	return entities.Principal{ID: "superuser", DisplayName: "Admin"}
}

func clinicianPrincipal() entities.Principal {
	return entities.Principal{ID: "mgomez", DisplayName: "Dr. Gomez"}
}

func readOnlyPrincipal() entities.Principal {
	return entities.Principal{ID: "readonly", DisplayName: "Viewer"}
}

func admitPatient(t *testing.T, module recordsservice.Module) httptransport.PatientResponse {
	t.Helper()
	resp, err := module.Handler.CreatePatientHandler(context.Background(), clinicianPrincipal(), httptransport.CreatePatientRequest{
		FullName:      "Ana Torres",
		Age:           7,
		Insurer:       "Sura",
		GuardianName:  "Luis Torres",
		GuardianPhone: "3001234567",
	})
	if err != nil {
		t.Fatalf("admit patient failed: %v", err)
	}
	return resp
}

func TestPatientAdmissionAssignsSequentialRooms(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()

	first := admitPatient(t, module)
	second, err := module.Handler.CreatePatientHandler(ctx, clinicianPrincipal(), httptransport.CreatePatientRequest{
		FullName:      "Pedro Ruiz",
		Age:           12,
		Insurer:       "Sura",
		GuardianName:  "Marta Ruiz",
		GuardianPhone: "3009876543",
	})
	if err != nil {
		t.Fatalf("second admission failed: %v", err)
	}

	if first.Item.Room != "101" || second.Item.Room != "102" {
		t.Fatalf("expected rooms 101 and 102, got %q and %q", first.Item.Room, second.Item.Room)
	}

	if _, err := module.Handler.DischargePatientHandler(ctx, clinicianPrincipal(), first.Item.PatientID); err != nil {
		t.Fatalf("discharge failed: %v", err)
	}
	third, err := module.Handler.CreatePatientHandler(ctx, clinicianPrincipal(), httptransport.CreatePatientRequest{
		FullName:      "Sofia Mora",
		Age:           4,
		Insurer:       "Sanitas",
		GuardianName:  "Julia Mora",
		GuardianPhone: "3014567890",
	})
	if err != nil {
		t.Fatalf("third admission failed: %v", err)
	}
	if third.Item.Room != "101" {
		t.Fatalf("expected freed room 101 to be reused, got %q", third.Item.Room)
	}
}

func TestReadOnlyPrincipalCannotMutate(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()
	patient := admitPatient(t, module)

	_, err := module.Handler.AddNoteHandler(ctx, readOnlyPrincipal(), patient.Item.PatientID, httptransport.AddNoteRequest{
		Title:   "Attempt",
		Content: "should be rejected",
	})
	if !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("expected role denial for read-only note creation, got %v", err)
	}

	_, err = module.Handler.AddMedicationHandler(ctx, readOnlyPrincipal(), patient.Item.PatientID, httptransport.AddMedicationRequest{
		Name: "Amoxicillin",
		Dose: "250mg",
	})
	if !errors.Is(err, domainerrors.ErrRoleDenied) {
		t.Fatalf("expected role denial for read-only medication, got %v", err)
	}

	detail, err := module.Handler.GetPatientHandler(ctx, readOnlyPrincipal(), patient.Item.PatientID)
	if err != nil {
		t.Fatalf("read-only principal should still read: %v", err)
	}
	if len(detail.Notes) != 0 || len(detail.Medications) != 0 {
		t.Fatalf("denied writes must leave no trace, got %d notes %d medications", len(detail.Notes), len(detail.Medications))
	}
}

func TestNoteEditByAnotherClinicianIsDenied(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()
	patient := admitPatient(t, module)

	note, err := module.Handler.AddNoteHandler(ctx, clinicianPrincipal(), patient.Item.PatientID, httptransport.AddNoteRequest{
		Type:    "evolution",
		Title:   "Morning round",
		Content: "Stable overnight.",
	})
	if err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	colleague := entities.Principal{ID: "plopez", DisplayName: "Dr. Lopez"}
	_, err = module.Handler.EditNoteHandler(ctx, colleague, note.Item.NoteID, httptransport.EditNoteRequest{
		Title:   "Morning round",
		Content: "Amended by colleague.",
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected ownership denial, got %v", err)
	}

	edited, err := module.Handler.EditNoteHandler(ctx, adminPrincipal(), note.Item.NoteID, httptransport.EditNoteRequest{
		Title:   "Morning round",
		Content: "Amended by admin.",
	})
	if err != nil {
		t.Fatalf("admin edit failed: %v", err)
	}
	if edited.Event.PreviousContent != "Stable overnight." {
		t.Fatalf("expected pre-image in edit event, got %q", edited.Event.PreviousContent)
	}

	history, err := module.Handler.ListNoteEditsHandler(ctx, clinicianPrincipal(), note.Item.NoteID)
	if err != nil {
		t.Fatalf("list note edits failed: %v", err)
	}
	if len(history.Items) != 1 {
		t.Fatalf("expected exactly one edit event, got %d", len(history.Items))
	}
}

func TestDischargeIsOneWay(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()
	patient := admitPatient(t, module)

	discharge, err := module.Handler.DischargePatientHandler(ctx, clinicianPrincipal(), patient.Item.PatientID)
	if err != nil {
		t.Fatalf("discharge failed: %v", err)
	}
	if discharge.Item.Status != "discharged" {
		t.Fatalf("expected discharged status, got %q", discharge.Item.Status)
	}
	if discharge.Note.Title != "Discharge" {
		t.Fatalf("expected system discharge note, got %q", discharge.Note.Title)
	}

	_, err = module.Handler.DischargePatientHandler(ctx, clinicianPrincipal(), patient.Item.PatientID)
	if !errors.Is(err, domainerrors.ErrAlreadyDischarged) {
		t.Fatalf("expected repeat discharge conflict, got %v", err)
	}

	_, err = module.Handler.UpdatePatientHandler(ctx, adminPrincipal(), patient.Item.PatientID, httptransport.UpdatePatientRequest{
		Status: "admitted",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyDischarged) {
		t.Fatalf("expected discharged record to be frozen, got %v", err)
	}
}

func TestMedicationAdministrationIsSingleShot(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()
	patient := admitPatient(t, module)

	medication, err := module.Handler.AddMedicationHandler(ctx, clinicianPrincipal(), patient.Item.PatientID, httptransport.AddMedicationRequest{
		Name:      "Amoxicillin",
		Dose:      "250mg",
		Route:     "vo",
		Frequency: "8h",
		Status:    "due",
	})
	if err != nil {
		t.Fatalf("add medication failed: %v", err)
	}

	given, err := module.Handler.AdministerMedicationHandler(ctx, clinicianPrincipal(), medication.Item.MedicationID, httptransport.AdministerMedicationRequest{
		Notes: "tolerated well",
	})
	if err != nil {
		t.Fatalf("administer failed: %v", err)
	}
	if given.Item.Status != "given" {
		t.Fatalf("expected given status, got %q", given.Item.Status)
	}

	_, err = module.Handler.AdministerMedicationHandler(ctx, clinicianPrincipal(), medication.Item.MedicationID, httptransport.AdministerMedicationRequest{})
	if !errors.Is(err, domainerrors.ErrAlreadyAdministered) {
		t.Fatalf("expected repeat administration conflict, got %v", err)
	}

	history, err := module.Handler.ListAdministrationsHandler(ctx, clinicianPrincipal(), medication.Item.MedicationID)
	if err != nil {
		t.Fatalf("list administrations failed: %v", err)
	}
	if len(history.Items) != 1 {
		t.Fatalf("expected exactly one administration event, got %d", len(history.Items))
	}
}

func TestAccessCheckMatchesRoleMatrix(t *testing.T) {
	module := newRecordsModule()
	ctx := context.Background()

	cases := []struct {
		name      string
		principal entities.Principal
		action    string
		allowed   bool
	}{
		{"admin updates patients", adminPrincipal(), "patient.update", true},
		{"clinician cannot update patients", clinicianPrincipal(), "patient.update", false},
		{"clinician creates notes", clinicianPrincipal(), "note.create", true},
		{"read-only cannot discharge", readOnlyPrincipal(), "patient.discharge", false},
		{"clinician manages medications", clinicianPrincipal(), "medication.manage", true},
	}
	for _, tc := range cases {
		resp, err := module.Handler.CheckAccessHandler(ctx, tc.principal, httptransport.AccessCheckRequest{Action: tc.action})
		if err != nil {
			t.Fatalf("%s: access check failed: %v", tc.name, err)
		}
		if resp.Allowed != tc.allowed {
			t.Fatalf("%s: expected allowed=%v, got %v (reason %q)", tc.name, tc.allowed, resp.Allowed, resp.Reason)
		}
	}
}
