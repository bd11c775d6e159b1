package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PatientSummaryDTO struct {
	PatientID  string `json:"patient_id"`
	FullName   string `json:"full_name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	DocumentID string `json:"document_id,omitempty"`
	Room       string `json:"room"`
	Insurer    string `json:"insurer"`
	Status     string `json:"status"`
	MedsDue    int    `json:"meds_due"`
	AdmittedAt string `json:"admitted_at"`
}

type ListPatientsResponse struct {
	Items []PatientSummaryDTO `json:"items"`
}

type PatientDTO struct {
	PatientID       string `json:"patient_id"`
	FullName        string `json:"full_name"`
	BirthDate       string `json:"birth_date,omitempty"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	DocumentID      string `json:"document_id,omitempty"`
	Address         string `json:"address,omitempty"`
	Insurer         string `json:"insurer"`
	Allergies       string `json:"allergies,omitempty"`
	Diagnoses       string `json:"diagnoses,omitempty"`
	PriorConditions string `json:"prior_conditions,omitempty"`
	Surgeries       string `json:"surgeries,omitempty"`
	GuardianName    string `json:"guardian_name"`
	GuardianPhone   string `json:"guardian_phone"`
	Room            string `json:"room"`
	Status          string `json:"status"`
	AdmittedAt      string `json:"admitted_at"`
	UpdatedAt       string `json:"updated_at"`
}

type CreatePatientRequest struct {
	FullName        string `json:"full_name"`
	BirthDate       string `json:"birth_date,omitempty"`
	Age             int    `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	DocumentID      string `json:"document_id,omitempty"`
	Address         string `json:"address,omitempty"`
	Insurer         string `json:"insurer"`
	Allergies       string `json:"allergies,omitempty"`
	Diagnoses       string `json:"diagnoses,omitempty"`
	PriorConditions string `json:"prior_conditions,omitempty"`
	Surgeries       string `json:"surgeries,omitempty"`
	GuardianName    string `json:"guardian_name"`
	GuardianPhone   string `json:"guardian_phone"`
	Room            string `json:"room,omitempty"`
	Status          string `json:"status,omitempty"`
}

type UpdatePatientRequest struct {
	FullName        string `json:"full_name"`
	BirthDate       string `json:"birth_date,omitempty"`
	Age             int    `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	DocumentID      string `json:"document_id,omitempty"`
	Address         string `json:"address,omitempty"`
	Insurer         string `json:"insurer,omitempty"`
	Allergies       string `json:"allergies,omitempty"`
	Diagnoses       string `json:"diagnoses,omitempty"`
	PriorConditions string `json:"prior_conditions,omitempty"`
	Surgeries       string `json:"surgeries,omitempty"`
	GuardianName    string `json:"guardian_name,omitempty"`
	GuardianPhone   string `json:"guardian_phone,omitempty"`
	Room            string `json:"room,omitempty"`
	Status          string `json:"status,omitempty"`
}

type PatientResponse struct {
	Item PatientDTO `json:"item"`
}

type PatientDetailResponse struct {
	Item         PatientDTO      `json:"item"`
	Medications  []MedicationDTO `json:"medications"`
	Notes        []NoteDTO       `json:"notes"`
	MedsDue      int             `json:"meds_due"`
	EvolutionDue bool            `json:"evolution_due"`
}

type EvolutionDueResponse struct {
	PatientID    string `json:"patient_id"`
	EvolutionDue bool   `json:"evolution_due"`
}

type DischargePatientResponse struct {
	Item PatientDTO `json:"item"`
	Note NoteDTO    `json:"note"`
}

type NoteDTO struct {
	NoteID     string `json:"note_id"`
	PatientID  string `json:"patient_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type AddNoteRequest struct {
	Type    string `json:"type,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	Item NoteDTO `json:"item"`
}

type EditNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteEditEventDTO struct {
	EventID         string `json:"event_id"`
	NoteID          string `json:"note_id"`
	EditedBy        string `json:"edited_by"`
	EditedByName    string `json:"edited_by_name"`
	EditedAt        string `json:"edited_at"`
	PreviousTitle   string `json:"previous_title"`
	NewTitle        string `json:"new_title"`
	PreviousContent string `json:"previous_content"`
	NewContent      string `json:"new_content"`
}

type EditNoteResponse struct {
	Item  NoteDTO          `json:"item"`
	Event NoteEditEventDTO `json:"event"`
}

type ListNoteEditsResponse struct {
	Items []NoteEditEventDTO `json:"items"`
}

type MedicationDTO struct {
	MedicationID string `json:"medication_id"`
	PatientID    string `json:"patient_id"`
	Name         string `json:"name"`
	Dose         string `json:"dose"`
	Route        string `json:"route"`
	Frequency    string `json:"frequency,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type AddMedicationRequest struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Route     string `json:"route,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Status    string `json:"status,omitempty"`
}

type MedicationResponse struct {
	Item MedicationDTO `json:"item"`
}

type AdministerMedicationRequest struct {
	Notes string `json:"notes,omitempty"`
}

type AdministrationEventDTO struct {
	EventID            string `json:"event_id"`
	MedicationID       string `json:"medication_id"`
	AdministeredBy     string `json:"administered_by"`
	AdministeredByName string `json:"administered_by_name"`
	AdministeredAt     string `json:"administered_at"`
	Notes              string `json:"notes,omitempty"`
}

type AdministerMedicationResponse struct {
	Item  MedicationDTO          `json:"item"`
	Event AdministrationEventDTO `json:"event"`
}

type ListAdministrationsResponse struct {
	Items []AdministrationEventDTO `json:"items"`
}

type AccessCheckRequest struct {
	Action     string `json:"action"`
	ResourceID string `json:"resource_id,omitempty"`
}

type AccessCheckResponse struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason,omitempty"`
	CheckedAt string `json:"checked_at"`
}

type RoleResponse struct {
	UserID      string `json:"user_id"`
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
