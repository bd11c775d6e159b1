package services

import "clinicalh/contexts/clinical-care/records-service/domain/entities"

// RoleResolver maps an authenticated identity to exactly one role.
// The administrator and read-only roles are each bound to one reserved
// identity fixed at provisioning; every other identity is a clinician.
// Resolution is total and deterministic so decisions stay reproducible.
type RoleResolver struct {
	AdministratorIdentity string
	ReadOnlyIdentity      string
}

// Resolve returns the single role for an identity.
func (r RoleResolver) Resolve(identity string) entities.Role {
	switch identity {
	case r.AdministratorIdentity:
		return entities.RoleAdministrator
	case r.ReadOnlyIdentity:
		return entities.RoleReadOnly
	default:
		return entities.RoleClinician
	}
}
