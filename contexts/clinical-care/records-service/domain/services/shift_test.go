package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
)

func clinicZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func TestShiftStartDayWindow(t *testing.T) {
	loc := clinicZone(t)

	now := time.Date(2026, time.March, 10, 10, 30, 0, 0, loc)
	start := ShiftStart(now, loc)
	assert.Equal(t, time.Date(2026, time.March, 10, 7, 0, 0, 0, loc), start)
}

func TestShiftStartNightWindowEvening(t *testing.T) {
	loc := clinicZone(t)

	now := time.Date(2026, time.March, 10, 22, 15, 0, 0, loc)
	start := ShiftStart(now, loc)
	assert.Equal(t, time.Date(2026, time.March, 10, 19, 0, 0, 0, loc), start)
}

func TestShiftStartNightWindowEarlyMorning(t *testing.T) {
	loc := clinicZone(t)

	// Before 07:00 the active shift started at 19:00 the previous day.
	now := time.Date(2026, time.March, 10, 3, 0, 0, 0, loc)
	start := ShiftStart(now, loc)
	assert.Equal(t, time.Date(2026, time.March, 9, 19, 0, 0, 0, loc), start)
}

func TestShiftStartDayBoundaryExactly0700(t *testing.T) {
	loc := clinicZone(t)

	now := time.Date(2026, time.March, 10, 7, 0, 0, 0, loc)
	start := ShiftStart(now, loc)
	assert.Equal(t, time.Date(2026, time.March, 10, 7, 0, 0, 0, loc), start)
}

func TestIsEvolutionDueNoQualifyingNotes(t *testing.T) {
	loc := clinicZone(t)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)

	// Lab notes never satisfy evolution coverage.
	notes := []entities.MedicalNote{
		{Type: entities.NoteTypeLab, CreatedAt: now.Add(-time.Hour)},
	}
	assert.True(t, IsEvolutionDue(notes, now, loc))
	assert.True(t, IsEvolutionDue(nil, now, loc))
}

func TestIsEvolutionDueSatisfiedByVitalsNote(t *testing.T) {
	loc := clinicZone(t)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)

	notes := []entities.MedicalNote{
		{Type: entities.NoteTypeVitals, CreatedAt: time.Date(2026, time.March, 10, 8, 0, 0, 0, loc)},
	}
	assert.False(t, IsEvolutionDue(notes, now, loc))
}

func TestIsEvolutionDueNoteAttribution(t *testing.T) {
	loc := clinicZone(t)

	// A note at 06:59:59 belongs to the night shift that started at 19:00
	// yesterday; by day shift at noon it no longer counts.
	earlyNote := entities.MedicalNote{
		Type:      entities.NoteTypeGeneral,
		CreatedAt: time.Date(2026, time.March, 10, 6, 59, 59, 0, loc),
	}
	nightNow := time.Date(2026, time.March, 10, 6, 59, 59, 0, loc)
	dayNow := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)
	assert.False(t, IsEvolutionDue([]entities.MedicalNote{earlyNote}, nightNow, loc))
	assert.True(t, IsEvolutionDue([]entities.MedicalNote{earlyNote}, dayNow, loc))

	// A note at exactly 07:00:00 belongs to the day shift starting then.
	boundaryNote := entities.MedicalNote{
		Type:      entities.NoteTypeGeneral,
		CreatedAt: time.Date(2026, time.March, 10, 7, 0, 0, 0, loc),
	}
	assert.False(t, IsEvolutionDue([]entities.MedicalNote{boundaryNote}, dayNow, loc))
}

func TestIsEvolutionDueRederivableAcrossShiftBoundary(t *testing.T) {
	loc := clinicZone(t)

	note := entities.MedicalNote{
		Type:      entities.NoteTypeVitals,
		CreatedAt: time.Date(2026, time.March, 10, 18, 30, 0, 0, loc),
	}

	beforeBoundary := time.Date(2026, time.March, 10, 18, 45, 0, 0, loc)
	afterBoundary := time.Date(2026, time.March, 10, 19, 5, 0, 0, loc)
	assert.False(t, IsEvolutionDue([]entities.MedicalNote{note}, beforeBoundary, loc))
	assert.True(t, IsEvolutionDue([]entities.MedicalNote{note}, afterBoundary, loc))
}
