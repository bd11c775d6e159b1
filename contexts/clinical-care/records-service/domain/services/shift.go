package services

import (
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
)

// Shift boundaries in the clinic's fixed local time zone.
// Day covers [07:00, 19:00); night covers [19:00, 07:00 next day).
const (
	dayShiftStartHour   = 7
	nightShiftStartHour = 19
)

// ShiftStart returns the start of the shift containing now, in the given
// zone. The result moves continuously with now and is never cached.
func ShiftStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	year, month, day := local.Date()

	switch {
	case local.Hour() < dayShiftStartHour:
		// Early morning belongs to the night shift that started yesterday.
		yesterday := local.AddDate(0, 0, -1)
		y, m, d := yesterday.Date()
		return time.Date(y, m, d, nightShiftStartHour, 0, 0, 0, loc)
	case local.Hour() < nightShiftStartHour:
		return time.Date(year, month, day, dayShiftStartHour, 0, 0, 0, loc)
	default:
		return time.Date(year, month, day, nightShiftStartHour, 0, 0, 0, loc)
	}
}

// qualifiesForEvolution reports whether a note type counts as shift
// evolution coverage.
func qualifiesForEvolution(noteType entities.NoteType) bool {
	return noteType == entities.NoteTypeVitals || noteType == entities.NoteTypeGeneral
}

// IsEvolutionDue reports whether no qualifying note exists for the patient
// since the start of the current shift. Notes created exactly at the shift
// boundary belong to the shift starting then.
func IsEvolutionDue(notes []entities.MedicalNote, now time.Time, loc *time.Location) bool {
	start := ShiftStart(now, loc)
	for _, note := range notes {
		if !qualifiesForEvolution(note.Type) {
			continue
		}
		if !note.CreatedAt.Before(start) {
			return false
		}
	}
	return true
}
