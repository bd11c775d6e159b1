package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestRoleResolverIsTotalAndDeterministic(t *testing.T) {
	resolver := RoleResolver{
		AdministratorIdentity: "chief",
		ReadOnlyIdentity:      "observer",
	}

	assert.Equal(t, entities.RoleAdministrator, resolver.Resolve("chief"))
	assert.Equal(t, entities.RoleReadOnly, resolver.Resolve("observer"))
	assert.Equal(t, entities.RoleClinician, resolver.Resolve("nurse.ramirez"))
	assert.Equal(t, entities.RoleClinician, resolver.Resolve(""))

	// Same identity always resolves to the same single role.
	for i := 0; i < 3; i++ {
		assert.Equal(t, entities.RoleClinician, resolver.Resolve("nurse.ramirez"))
	}
}

func TestPatientPermissionsByRole(t *testing.T) {
	cases := []struct {
		name    string
		decide  func(entities.Role, time.Time) entities.AccessDecision
		allowed map[entities.Role]bool
	}{
		{
			name:   "create patient",
			decide: CanCreatePatient,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     true,
				entities.RoleReadOnly:      false,
			},
		},
		{
			name:   "update patient",
			decide: CanUpdatePatient,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     false,
				entities.RoleReadOnly:      false,
			},
		},
		{
			name:   "delete patient",
			decide: CanDeletePatient,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     false,
				entities.RoleReadOnly:      false,
			},
		},
		{
			name:   "manage medication",
			decide: CanManageMedication,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     true,
				entities.RoleReadOnly:      false,
			},
		},
		{
			name:   "create note",
			decide: CanCreateNote,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     true,
				entities.RoleReadOnly:      false,
			},
		},
		{
			name:   "discharge patient",
			decide: CanDischargePatient,
			allowed: map[entities.Role]bool{
				entities.RoleAdministrator: true,
				entities.RoleClinician:     true,
				entities.RoleReadOnly:      false,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for role, want := range tc.allowed {
				decision := tc.decide(role, testNow)
				assert.Equal(t, want, decision.Allowed, "role %s", role)
				if !want {
					assert.Equal(t, entities.DenyReasonRole, decision.Reason)
				}
			}
		})
	}
}

func TestCanEditNoteAdministratorAlwaysAllowed(t *testing.T) {
	note := entities.MedicalNote{
		AuthorID:  "someone-else",
		CreatedAt: testNow.Add(-30 * 24 * time.Hour),
	}
	admin := entities.Principal{ID: "admin-1", Role: entities.RoleAdministrator}

	decision := CanEditNote(entities.RoleAdministrator, note, admin, testNow)
	assert.True(t, decision.Allowed)
}

func TestCanEditNoteReadOnlyAlwaysDenied(t *testing.T) {
	observer := entities.Principal{ID: "observer-1", Role: entities.RoleReadOnly}
	note := entities.MedicalNote{AuthorID: "observer-1", CreatedAt: testNow}

	decision := CanEditNote(entities.RoleReadOnly, note, observer, testNow)
	assert.False(t, decision.Allowed)
	assert.Equal(t, entities.DenyReasonRole, decision.Reason)
}

func TestCanEditNoteClinicianOwnership(t *testing.T) {
	clinician := entities.Principal{ID: "nurse-1", Role: entities.RoleClinician}
	note := entities.MedicalNote{AuthorID: "nurse-2", CreatedAt: testNow.Add(-time.Hour)}

	decision := CanEditNote(entities.RoleClinician, note, clinician, testNow)
	assert.False(t, decision.Allowed)
	assert.Equal(t, entities.DenyReasonOwnership, decision.Reason)
}

func TestCanEditNoteEditWindowBoundary(t *testing.T) {
	clinician := entities.Principal{ID: "nurse-1", Role: entities.RoleClinician}

	// Exactly 48h elapsed remains editable.
	atBoundary := entities.MedicalNote{
		AuthorID:  "nurse-1",
		CreatedAt: testNow.Add(-NoteEditWindow),
	}
	decision := CanEditNote(entities.RoleClinician, atBoundary, clinician, testNow)
	assert.True(t, decision.Allowed)

	// One second past the window blocks the edit.
	pastBoundary := entities.MedicalNote{
		AuthorID:  "nurse-1",
		CreatedAt: testNow.Add(-NoteEditWindow - time.Second),
	}
	decision = CanEditNote(entities.RoleClinician, pastBoundary, clinician, testNow)
	assert.False(t, decision.Allowed)
	assert.Equal(t, entities.DenyReasonExpired, decision.Reason)
}

func TestCanEditNoteClinicianOwnRecentNote(t *testing.T) {
	clinician := entities.Principal{ID: "nurse-1", Role: entities.RoleClinician}
	note := entities.MedicalNote{AuthorID: "nurse-1", CreatedAt: testNow.Add(-2 * time.Hour)}

	decision := CanEditNote(entities.RoleClinician, note, clinician, testNow)
	assert.True(t, decision.Allowed)
	assert.Equal(t, entities.DenyReasonNone, decision.Reason)
}
