package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/domain/services"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

const moduleName = "clinical-care/records-service"

// Service coordinates authorization, state mutation and audit recording.
// Every temporal decision uses the Clock port; nothing reads the ambient
// system clock on a decision path.
type Service struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Roles       services.RoleResolver
	ClinicZone  *time.Location
	Logger      *slog.Logger
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) zone() *time.Location {
	if s.ClinicZone == nil {
		return time.UTC
	}
	return s.ClinicZone
}

// resolvePrincipal derives the role for an authenticated principal. The
// role is recomputed from identity on every request, never trusted from
// the transport.
func (s Service) resolvePrincipal(principal entities.Principal) (entities.Principal, error) {
	if strings.TrimSpace(principal.ID) == "" {
		return entities.Principal{}, domainerrors.ErrMissingPrincipal
	}
	if strings.TrimSpace(principal.Identity) == "" {
		principal.Identity = principal.ID
	}
	if strings.TrimSpace(principal.DisplayName) == "" {
		principal.DisplayName = principal.Identity
	}
	principal.Role = s.Roles.Resolve(principal.Identity)
	return principal, nil
}

// ResolveRole exposes pure role resolution to calling layers.
func (s Service) ResolveRole(principal entities.Principal) (entities.Principal, error) {
	return s.resolvePrincipal(principal)
}

// CheckAccess evaluates one access decision for the given action. Actions
// with temporal or ownership scope (note.edit) load the resource snapshot
// first; everything else is a pure role check.
func (s Service) CheckAccess(
	ctx context.Context,
	principal entities.Principal,
	action string,
	resourceID string,
) (entities.AccessDecision, error) {
	resolved, err := s.resolvePrincipal(principal)
	if err != nil {
		return entities.AccessDecision{}, err
	}
	now := s.now()

	switch strings.TrimSpace(action) {
	case "patient.create":
		return services.CanCreatePatient(resolved.Role, now), nil
	case "patient.update":
		return services.CanUpdatePatient(resolved.Role, now), nil
	case "patient.delete":
		return services.CanDeletePatient(resolved.Role, now), nil
	case "patient.discharge":
		return services.CanDischargePatient(resolved.Role, now), nil
	case "medication.manage":
		return services.CanManageMedication(resolved.Role, now), nil
	case "note.create":
		return services.CanCreateNote(resolved.Role, now), nil
	case "note.edit":
		if strings.TrimSpace(resourceID) == "" {
			return entities.AccessDecision{}, fmt.Errorf("%w: resource_id is required for note.edit", domainerrors.ErrInvalidRequest)
		}
		note, err := s.Repo.GetNote(ctx, resourceID)
		if err != nil {
			return entities.AccessDecision{}, err
		}
		return services.CanEditNote(resolved.Role, note, resolved, now), nil
	default:
		return entities.AccessDecision{}, fmt.Errorf("%w: unknown action %q", domainerrors.ErrInvalidRequest, action)
	}
}

// denyError maps a negative decision to its sentinel so callers can render
// a reason-specific message.
func denyError(decision entities.AccessDecision) error {
	switch decision.Reason {
	case entities.DenyReasonOwnership:
		return domainerrors.ErrNotOwner
	case entities.DenyReasonExpired:
		return domainerrors.ErrEditWindowExpired
	default:
		return domainerrors.ErrRoleDenied
	}
}

func (s Service) newID(ctx context.Context) (string, error) {
	return s.IDGenerator.NewID(ctx)
}

func requireField(value string, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domainerrors.ErrInvalidRequest, field)
	}
	return nil
}
