package services

import (
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
)

// NoteEditWindow is how long a clinician may edit their own note after
// creating it. Exactly NoteEditWindow elapsed is still editable; only
// strictly more blocks the edit.
const NoteEditWindow = 48 * time.Hour

// Access policy primitives. Each is a pure function of role, resource
// snapshot, principal and an explicit now, so every temporal decision is
// fully controllable in tests. Decisions carry a typed reason on denial.

// CanCreatePatient allows administrators and clinicians.
func CanCreatePatient(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator || role == entities.RoleClinician {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}

// CanUpdatePatient allows administrators only. Clinicians may create
// patients but never edit them; the asymmetry is intentional.
func CanUpdatePatient(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}

// CanDeletePatient allows administrators only.
func CanDeletePatient(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}

// CanManageMedication allows administrators and clinicians.
func CanManageMedication(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator || role == entities.RoleClinician {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}

// CanCreateNote allows administrators and clinicians.
func CanCreateNote(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator || role == entities.RoleClinician {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}

// CanEditNote evaluates the note edit policy against a note snapshot:
// administrators always may, read-only principals never may, and a
// clinician may only edit their own note while the edit window is open.
func CanEditNote(
	role entities.Role,
	note entities.MedicalNote,
	principal entities.Principal,
	now time.Time,
) entities.AccessDecision {
	switch role {
	case entities.RoleAdministrator:
		return entities.Allow(now)
	case entities.RoleReadOnly:
		return entities.Deny(entities.DenyReasonRole, now)
	}
	if note.AuthorID != principal.ID {
		return entities.Deny(entities.DenyReasonOwnership, now)
	}
	if now.Sub(note.CreatedAt) > NoteEditWindow {
		return entities.Deny(entities.DenyReasonExpired, now)
	}
	return entities.Allow(now)
}

// CanDischargePatient allows administrators and clinicians; the
// already-discharged guard is a state conflict, not an access denial.
func CanDischargePatient(role entities.Role, now time.Time) entities.AccessDecision {
	if role == entities.RoleAdministrator || role == entities.RoleClinician {
		return entities.Allow(now)
	}
	return entities.Deny(entities.DenyReasonRole, now)
}
