package entities

import "time"

// PatientStatus is the hospitalization state of a patient.
// The transition to discharged is one-way.
type PatientStatus string

const (
	PatientStatusStable           PatientStatus = "stable"
	PatientStatusUnderObservation PatientStatus = "under_observation"
	PatientStatusDischarged       PatientStatus = "discharged"
)

// Patient is a hospitalized person with demographic and clinical context.
type Patient struct {
	PatientID       string        `json:"patient_id"`
	FullName        string        `json:"full_name"`
	BirthDate       *time.Time    `json:"birth_date,omitempty"`
	Age             int           `json:"age"`
	Gender          string        `json:"gender"`
	DocumentID      string        `json:"document_id"`
	Address         string        `json:"address,omitempty"`
	Insurer         string        `json:"insurer"`
	Allergies       string        `json:"allergies,omitempty"`
	Diagnoses       string        `json:"diagnoses,omitempty"`
	PriorConditions string        `json:"prior_conditions,omitempty"`
	Surgeries       string        `json:"surgeries,omitempty"`
	GuardianName    string        `json:"guardian_name"`
	GuardianPhone   string        `json:"guardian_phone"`
	Room            string        `json:"room"`
	Status          PatientStatus `json:"status"`
	AdmittedAt      time.Time     `json:"admitted_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
