package entities

import "time"

// MedicationStatus is the administration state of a prescribed medication.
// available and due may transition to given; given is terminal for the row.
type MedicationStatus string

const (
	MedicationStatusAvailable MedicationStatus = "available"
	MedicationStatusDue       MedicationStatus = "due"
	MedicationStatusGiven     MedicationStatus = "given"
)

// MedicationRoute is the administration route code.
type MedicationRoute string

const (
	RouteOral          MedicationRoute = "VO"
	RouteIntravenous   MedicationRoute = "IV"
	RouteIntramuscular MedicationRoute = "IM"
	RouteSubcutaneous  MedicationRoute = "SC"
	RouteTopical       MedicationRoute = "TOP"
)

// Medication is a prescribed dose owned by a patient.
type Medication struct {
	MedicationID string           `json:"medication_id"`
	PatientID    string           `json:"patient_id"`
	Name         string           `json:"name"`
	Dose         string           `json:"dose"`
	Route        MedicationRoute  `json:"route"`
	Frequency    string           `json:"frequency"`
	Status       MedicationStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MedicationAdministrationEvent records one administration of a medication.
// Rows are append-only and retrieved newest-first.
type MedicationAdministrationEvent struct {
	EventID            string    `json:"event_id"`
	MedicationID       string    `json:"medication_id"`
	AdministeredBy     string    `json:"administered_by"`
	AdministeredByName string    `json:"administered_by_name"`
	AdministeredAt     time.Time `json:"administered_at"`
	Notes              string    `json:"notes,omitempty"`
}
