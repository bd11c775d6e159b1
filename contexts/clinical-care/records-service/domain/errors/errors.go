package errors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidNoteType     = errors.New("invalid note type")
	ErrInvalidRoute        = errors.New("invalid medication route")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrMissingPrincipal    = errors.New("principal is required")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrRoleDenied          = errors.New("role does not permit this action")
	ErrNotOwner            = errors.New("note can only be edited by its author")
	ErrEditWindowExpired   = errors.New("note edit window has expired")
	ErrAlreadyDischarged   = errors.New("patient is already discharged")
	ErrAlreadyAdministered = errors.New("medication has already been administered")
)
