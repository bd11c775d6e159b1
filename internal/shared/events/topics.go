package events

// Canonical topic names shared by producers and the worker relay.
// Payloads are the records-service event envelopes serialized as JSON.
const (
	TopicNoteEdited             = "clinical.note.edited"
	TopicMedicationAdministered = "clinical.medication.administered"
	TopicPatientDischarged      = "clinical.patient.discharged"
)
