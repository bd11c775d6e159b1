package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"clinicalh/contexts/clinical-care/records-service/domain/entities"
	domainerrors "clinicalh/contexts/clinical-care/records-service/domain/errors"
	"clinicalh/contexts/clinical-care/records-service/ports"
	"clinicalh/internal/shared/events"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	firstRoomNumber = 101
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListPatients(ctx context.Context) ([]ports.PatientSummary, error) {
	var rows []patientModel
	if err := r.db.WithContext(ctx).
		Order("room ASC, full_name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_patients_failed", err)
	}

	type dueCount struct {
		PatientID string `gorm:"column:patient_id"`
		Due       int    `gorm:"column:due"`
	}
	var counts []dueCount
	if err := r.db.WithContext(ctx).
		Model(&medicationModel{}).
		Select("patient_id, COUNT(*) AS due").
		Where("status = ?", string(entities.MedicationStatusDue)).
		Group("patient_id").
		Scan(&counts).Error; err != nil {
		return nil, r.logError("records_repo_list_patients_meds_due_failed", err)
	}
	dueByPatient := make(map[string]int, len(counts))
	for _, c := range counts {
		dueByPatient[c.PatientID] = c.Due
	}

	summaries := make([]ports.PatientSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.PatientSummary{
			PatientID:  row.ID,
			FullName:   row.FullName,
			Age:        row.Age,
			Gender:     row.Gender,
			DocumentID: row.DocumentID,
			Room:       row.Room,
			Insurer:    row.Insurer,
			Status:     entities.PatientStatus(row.Status),
			MedsDue:    dueByPatient[row.ID],
			AdmittedAt: row.AdmittedAt.UTC(),
		})
	}
	return summaries, nil
}

func (r *Repository) GetPatient(ctx context.Context, patientID string) (ports.PatientDetail, error) {
	id := strings.TrimSpace(patientID)

	var row patientModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PatientDetail{}, domainerrors.ErrPatientNotFound
		}
		return ports.PatientDetail{}, r.logError("records_repo_get_patient_failed", err, "patient_id", id)
	}

	var medicationRows []medicationModel
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&medicationRows).Error; err != nil {
		return ports.PatientDetail{}, r.logError("records_repo_get_patient_medications_failed", err, "patient_id", id)
	}

	var noteRows []noteModel
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", id).
		Order("created_at DESC, id ASC").
		Find(&noteRows).Error; err != nil {
		return ports.PatientDetail{}, r.logError("records_repo_get_patient_notes_failed", err, "patient_id", id)
	}

	detail := ports.PatientDetail{
		Patient:     row.toEntity(),
		Medications: toMedicationEntities(medicationRows),
		Notes:       toNoteEntities(noteRows),
	}
	for _, medication := range detail.Medications {
		if medication.Status == entities.MedicationStatusDue {
			detail.MedsDue++
		}
	}
	return detail, nil
}

func (r *Repository) CreatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error) {
	row := patientModelFromEntity(patient)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.Room == "" {
			room, err := nextFreeRoom(tx)
			if err != nil {
				return err
			}
			row.Room = room
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidRequest
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidRequest) {
			return entities.Patient{}, err
		}
		return entities.Patient{}, r.logError("records_repo_create_patient_failed", err, "patient_id", row.ID)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePatient(ctx context.Context, patient entities.Patient) (entities.Patient, error) {
	row := patientModelFromEntity(patient)
	result := r.db.WithContext(ctx).
		Model(&patientModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"full_name":        row.FullName,
			"birth_date":       row.BirthDate,
			"age":              row.Age,
			"gender":           row.Gender,
			"document_id":      row.DocumentID,
			"address":          row.Address,
			"insurer":          row.Insurer,
			"allergies":        row.Allergies,
			"diagnoses":        row.Diagnoses,
			"prior_conditions": row.PriorConditions,
			"surgeries":        row.Surgeries,
			"guardian_name":    row.GuardianName,
			"guardian_phone":   row.GuardianPhone,
			"room":             row.Room,
			"status":           row.Status,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		return entities.Patient{}, r.logError("records_repo_update_patient_failed", result.Error, "patient_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return entities.Patient{}, domainerrors.ErrPatientNotFound
	}
	return row.toEntity(), nil
}

func (r *Repository) DeletePatient(ctx context.Context, patientID string) error {
	id := strings.TrimSpace(patientID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&patientModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPatientNotFound
		}

		var noteIDs []string
		if err := tx.Model(&noteModel{}).
			Where("patient_id = ?", id).
			Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if len(noteIDs) > 0 {
			if err := tx.Where("note_id IN ?", noteIDs).Delete(&noteEditEventModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("patient_id = ?", id).Delete(&noteModel{}).Error; err != nil {
				return err
			}
		}

		var medicationIDs []string
		if err := tx.Model(&medicationModel{}).
			Where("patient_id = ?", id).
			Pluck("id", &medicationIDs).Error; err != nil {
			return err
		}
		if len(medicationIDs) > 0 {
			if err := tx.Where("medication_id IN ?", medicationIDs).Delete(&administrationEventModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("patient_id = ?", id).Delete(&medicationModel{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPatientNotFound) {
			return err
		}
		return r.logError("records_repo_delete_patient_failed", err, "patient_id", id)
	}
	return nil
}

func (r *Repository) DischargePatient(ctx context.Context, input ports.DischargeInput) (ports.DischargeResult, error) {
	id := strings.TrimSpace(input.PatientID)
	var result ports.DischargeResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The status guard and the transition are one statement; a
		// concurrent discharge loses on RowsAffected.
		update := tx.Model(&patientModel{}).
			Where("id = ? AND status <> ?", id, string(entities.PatientStatusDischarged)).
			Updates(map[string]any{
				"status":     string(entities.PatientStatusDischarged),
				"updated_at": input.DischargedAt.UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			var existing patientModel
			if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrPatientNotFound
				}
				return err
			}
			return domainerrors.ErrAlreadyDischarged
		}

		noteRow := noteModelFromEntity(input.Note)
		if err := tx.Create(&noteRow).Error; err != nil {
			return err
		}

		var patientRow patientModel
		if err := tx.Where("id = ?", id).First(&patientRow).Error; err != nil {
			return err
		}

		if err := appendOutbox(tx, input.OutboxID, events.TopicPatientDischarged, ports.EventEnvelope{
			EventID:    input.OutboxID,
			EventType:  events.TopicPatientDischarged,
			EntityType: "patient",
			EntityID:   id,
			OccurredAt: input.DischargedAt,
			Payload:    patientRow.toEntity(),
		}, input.DischargedAt); err != nil {
			return err
		}

		result = ports.DischargeResult{
			Patient: patientRow.toEntity(),
			Note:    noteRow.toEntity(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPatientNotFound) || errors.Is(err, domainerrors.ErrAlreadyDischarged) {
			return ports.DischargeResult{}, err
		}
		return ports.DischargeResult{}, r.logError("records_repo_discharge_patient_failed", err, "patient_id", id)
	}
	return result, nil
}

func (r *Repository) GetNote(ctx context.Context, noteID string) (entities.MedicalNote, error) {
	id := strings.TrimSpace(noteID)
	var row noteModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MedicalNote{}, domainerrors.ErrNoteNotFound
		}
		return entities.MedicalNote{}, r.logError("records_repo_get_note_failed", err, "note_id", id)
	}
	return row.toEntity(), nil
}

func (r *Repository) AddNote(ctx context.Context, note entities.MedicalNote) (entities.MedicalNote, error) {
	row := noteModelFromEntity(note)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient patientModel
		if err := tx.Select("id").Where("id = ?", row.PatientID).First(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPatientNotFound
			}
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPatientNotFound) {
			return entities.MedicalNote{}, err
		}
		return entities.MedicalNote{}, r.logError("records_repo_add_note_failed", err, "note_id", row.ID)
	}
	return row.toEntity(), nil
}

func (r *Repository) EditNote(ctx context.Context, input ports.NoteEditInput) (ports.NoteEditResult, error) {
	id := strings.TrimSpace(input.NoteID)
	var result ports.NoteEditResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock so the pre-image captured into the audit event is the
		// state this update actually replaced.
		var row noteModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNoteNotFound
			}
			return err
		}

		eventRow := noteEditEventModel{
			ID:              strings.TrimSpace(input.EventID),
			NoteID:          id,
			EditedBy:        strings.TrimSpace(input.EditedBy),
			EditedByName:    strings.TrimSpace(input.EditorName),
			EditedAt:        input.EditedAt.UTC(),
			PreviousTitle:   row.Title,
			NewTitle:        input.NewTitle,
			PreviousContent: row.Content,
			NewContent:      input.NewContent,
		}
		if err := tx.Create(&eventRow).Error; err != nil {
			return err
		}

		if err := tx.Model(&noteModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"title":      input.NewTitle,
				"content":    input.NewContent,
				"updated_at": input.EditedAt.UTC(),
			}).Error; err != nil {
			return err
		}

		event := eventRow.toEntity()
		if err := appendOutbox(tx, input.OutboxID, events.TopicNoteEdited, ports.EventEnvelope{
			EventID:    event.EventID,
			EventType:  events.TopicNoteEdited,
			EntityType: "medical_note",
			EntityID:   id,
			OccurredAt: input.EditedAt,
			Payload:    event,
		}, input.EditedAt); err != nil {
			return err
		}

		row.Title = input.NewTitle
		row.Content = input.NewContent
		row.UpdatedAt = input.EditedAt.UTC()
		result = ports.NoteEditResult{Note: row.toEntity(), Event: event}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNoteNotFound) {
			return ports.NoteEditResult{}, err
		}
		return ports.NoteEditResult{}, r.logError("records_repo_edit_note_failed", err, "note_id", id)
	}
	return result, nil
}

func (r *Repository) ListPatientNotes(ctx context.Context, patientID string) ([]entities.MedicalNote, error) {
	id := strings.TrimSpace(patientID)

	var patient patientModel
	if err := r.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPatientNotFound
		}
		return nil, r.logError("records_repo_list_notes_patient_failed", err, "patient_id", id)
	}

	var rows []noteModel
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", id).
		Order("created_at DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_notes_failed", err, "patient_id", id)
	}
	return toNoteEntities(rows), nil
}

func (r *Repository) ListNoteEdits(ctx context.Context, noteID string) ([]entities.NoteEditEvent, error) {
	id := strings.TrimSpace(noteID)

	var note noteModel
	if err := r.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNoteNotFound
		}
		return nil, r.logError("records_repo_list_note_edits_note_failed", err, "note_id", id)
	}

	var rows []noteEditEventModel
	if err := r.db.WithContext(ctx).
		Where("note_id = ?", id).
		Order("edited_at DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_note_edits_failed", err, "note_id", id)
	}
	events := make([]entities.NoteEditEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func (r *Repository) GetMedication(ctx context.Context, medicationID string) (entities.Medication, error) {
	id := strings.TrimSpace(medicationID)
	var row medicationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Medication{}, domainerrors.ErrMedicationNotFound
		}
		return entities.Medication{}, r.logError("records_repo_get_medication_failed", err, "medication_id", id)
	}
	return row.toEntity(), nil
}

func (r *Repository) AddMedication(ctx context.Context, medication entities.Medication) (entities.Medication, error) {
	row := medicationModelFromEntity(medication)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient patientModel
		if err := tx.Select("id").Where("id = ?", row.PatientID).First(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPatientNotFound
			}
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPatientNotFound) {
			return entities.Medication{}, err
		}
		return entities.Medication{}, r.logError("records_repo_add_medication_failed", err, "medication_id", row.ID)
	}
	return row.toEntity(), nil
}

func (r *Repository) RemoveMedication(ctx context.Context, patientID string, medicationID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", strings.TrimSpace(medicationID), strings.TrimSpace(patientID)).
		Delete(&medicationModel{})
	if result.Error != nil {
		return r.logError("records_repo_remove_medication_failed", result.Error,
			"medication_id", strings.TrimSpace(medicationID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMedicationNotFound
	}
	return nil
}

func (r *Repository) AdministerMedication(ctx context.Context, input ports.AdministerInput) (ports.AdministerResult, error) {
	id := strings.TrimSpace(input.MedicationID)
	var result ports.AdministerResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-set: only a medication still awaiting administration
		// transitions. A concurrent winner leaves RowsAffected at zero for
		// everyone else.
		update := tx.Model(&medicationModel{}).
			Where("id = ? AND status IN ?", id, []string{
				string(entities.MedicationStatusAvailable),
				string(entities.MedicationStatusDue),
			}).
			Updates(map[string]any{
				"status":     string(entities.MedicationStatusGiven),
				"updated_at": input.AdministeredAt.UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			var existing medicationModel
			if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrMedicationNotFound
				}
				return err
			}
			return domainerrors.ErrAlreadyAdministered
		}

		eventRow := administrationEventModel{
			ID:                 strings.TrimSpace(input.EventID),
			MedicationID:       id,
			AdministeredBy:     strings.TrimSpace(input.AdministeredBy),
			AdministeredByName: strings.TrimSpace(input.AdministeredByName),
			AdministeredAt:     input.AdministeredAt.UTC(),
			Notes:              input.Notes,
		}
		if err := tx.Create(&eventRow).Error; err != nil {
			return err
		}

		var row medicationModel
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}

		event := eventRow.toEntity()
		if err := appendOutbox(tx, input.OutboxID, events.TopicMedicationAdministered, ports.EventEnvelope{
			EventID:    event.EventID,
			EventType:  events.TopicMedicationAdministered,
			EntityType: "medication",
			EntityID:   id,
			OccurredAt: input.AdministeredAt,
			Payload:    event,
		}, input.AdministeredAt); err != nil {
			return err
		}

		result = ports.AdministerResult{Medication: row.toEntity(), Event: event}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrMedicationNotFound) || errors.Is(err, domainerrors.ErrAlreadyAdministered) {
			return ports.AdministerResult{}, err
		}
		return ports.AdministerResult{}, r.logError("records_repo_administer_medication_failed", err, "medication_id", id)
	}
	return result, nil
}

func (r *Repository) ListAdministrations(ctx context.Context, medicationID string) ([]entities.MedicationAdministrationEvent, error) {
	id := strings.TrimSpace(medicationID)
	var rows []administrationEventModel
	if err := r.db.WithContext(ctx).
		Where("medication_id = ?", id).
		Order("administered_at DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_administrations_failed", err, "medication_id", id)
	}
	events := make([]entities.MedicationAdministrationEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("records_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidRequest
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "clinical-care/records-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("records repository operation failed", fields...)
	return err
}

func appendOutbox(tx *gorm.DB, outboxID string, eventType string, envelope ports.EventEnvelope, createdAt time.Time) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(outboxID),
		EventType: eventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: createdAt.UTC(),
	}
	return tx.Create(&row).Error
}

// nextFreeRoom picks the lowest unoccupied room number, counting only
// patients still admitted. Runs inside the admission transaction.
func nextFreeRoom(tx *gorm.DB) (string, error) {
	var rooms []string
	if err := tx.Model(&patientModel{}).
		Where("status <> ?", string(entities.PatientStatusDischarged)).
		Pluck("room", &rooms).Error; err != nil {
		return "", err
	}
	occupied := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		occupied[room] = true
	}
	for room := firstRoomNumber; ; room++ {
		candidate := strconv.Itoa(room)
		if !occupied[candidate] {
			return candidate, nil
		}
	}
}

type patientModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	FullName        string     `gorm:"column:full_name"`
	BirthDate       *time.Time `gorm:"column:birth_date"`
	Age             int        `gorm:"column:age"`
	Gender          string     `gorm:"column:gender"`
	DocumentID      string     `gorm:"column:document_id"`
	Address         string     `gorm:"column:address"`
	Insurer         string     `gorm:"column:insurer"`
	Allergies       string     `gorm:"column:allergies"`
	Diagnoses       string     `gorm:"column:diagnoses"`
	PriorConditions string     `gorm:"column:prior_conditions"`
	Surgeries       string     `gorm:"column:surgeries"`
	GuardianName    string     `gorm:"column:guardian_name"`
	GuardianPhone   string     `gorm:"column:guardian_phone"`
	Room            string     `gorm:"column:room"`
	Status          string     `gorm:"column:status"`
	AdmittedAt      time.Time  `gorm:"column:admitted_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (patientModel) TableName() string {
	return "patients"
}

func patientModelFromEntity(patient entities.Patient) patientModel {
	return patientModel{
		ID:              strings.TrimSpace(patient.PatientID),
		FullName:        patient.FullName,
		BirthDate:       normalizeOptionalTime(patient.BirthDate),
		Age:             patient.Age,
		Gender:          patient.Gender,
		DocumentID:      patient.DocumentID,
		Address:         patient.Address,
		Insurer:         patient.Insurer,
		Allergies:       patient.Allergies,
		Diagnoses:       patient.Diagnoses,
		PriorConditions: patient.PriorConditions,
		Surgeries:       patient.Surgeries,
		GuardianName:    patient.GuardianName,
		GuardianPhone:   patient.GuardianPhone,
		Room:            strings.TrimSpace(patient.Room),
		Status:          string(patient.Status),
		AdmittedAt:      patient.AdmittedAt.UTC(),
		CreatedAt:       patient.CreatedAt.UTC(),
		UpdatedAt:       patient.UpdatedAt.UTC(),
	}
}

func (m patientModel) toEntity() entities.Patient {
	return entities.Patient{
		PatientID:       m.ID,
		FullName:        m.FullName,
		BirthDate:       normalizeOptionalTime(m.BirthDate),
		Age:             m.Age,
		Gender:          m.Gender,
		DocumentID:      m.DocumentID,
		Address:         m.Address,
		Insurer:         m.Insurer,
		Allergies:       m.Allergies,
		Diagnoses:       m.Diagnoses,
		PriorConditions: m.PriorConditions,
		Surgeries:       m.Surgeries,
		GuardianName:    m.GuardianName,
		GuardianPhone:   m.GuardianPhone,
		Room:            m.Room,
		Status:          entities.PatientStatus(m.Status),
		AdmittedAt:      m.AdmittedAt.UTC(),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type noteModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	PatientID  string    `gorm:"column:patient_id"`
	NoteType   string    `gorm:"column:note_type"`
	Title      string    `gorm:"column:title"`
	Content    string    `gorm:"column:content"`
	AuthorID   string    `gorm:"column:author_id"`
	AuthorName string    `gorm:"column:author_name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (noteModel) TableName() string {
	return "medical_notes"
}

func noteModelFromEntity(note entities.MedicalNote) noteModel {
	return noteModel{
		ID:         strings.TrimSpace(note.NoteID),
		PatientID:  strings.TrimSpace(note.PatientID),
		NoteType:   string(note.Type),
		Title:      note.Title,
		Content:    note.Content,
		AuthorID:   strings.TrimSpace(note.AuthorID),
		AuthorName: note.AuthorName,
		CreatedAt:  note.CreatedAt.UTC(),
		UpdatedAt:  note.UpdatedAt.UTC(),
	}
}

func (m noteModel) toEntity() entities.MedicalNote {
	return entities.MedicalNote{
		NoteID:     m.ID,
		PatientID:  m.PatientID,
		Type:       entities.NoteType(m.NoteType),
		Title:      m.Title,
		Content:    m.Content,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

func toNoteEntities(rows []noteModel) []entities.MedicalNote {
	items := make([]entities.MedicalNote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type noteEditEventModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	NoteID          string    `gorm:"column:note_id"`
	EditedBy        string    `gorm:"column:edited_by"`
	EditedByName    string    `gorm:"column:edited_by_name"`
	EditedAt        time.Time `gorm:"column:edited_at"`
	PreviousTitle   string    `gorm:"column:previous_title"`
	NewTitle        string    `gorm:"column:new_title"`
	PreviousContent string    `gorm:"column:previous_content"`
	NewContent      string    `gorm:"column:new_content"`
}

func (noteEditEventModel) TableName() string {
	return "note_edit_events"
}

func (m noteEditEventModel) toEntity() entities.NoteEditEvent {
	return entities.NoteEditEvent{
		EventID:         m.ID,
		NoteID:          m.NoteID,
		EditedBy:        m.EditedBy,
		EditedByName:    m.EditedByName,
		EditedAt:        m.EditedAt.UTC(),
		PreviousTitle:   m.PreviousTitle,
		NewTitle:        m.NewTitle,
		PreviousContent: m.PreviousContent,
		NewContent:      m.NewContent,
	}
}

type medicationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PatientID string    `gorm:"column:patient_id"`
	Name      string    `gorm:"column:name"`
	Dose      string    `gorm:"column:dose"`
	Route     string    `gorm:"column:route"`
	Frequency string    `gorm:"column:frequency"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (medicationModel) TableName() string {
	return "medications"
}

func medicationModelFromEntity(medication entities.Medication) medicationModel {
	return medicationModel{
		ID:        strings.TrimSpace(medication.MedicationID),
		PatientID: strings.TrimSpace(medication.PatientID),
		Name:      medication.Name,
		Dose:      medication.Dose,
		Route:     string(medication.Route),
		Frequency: medication.Frequency,
		Status:    string(medication.Status),
		CreatedAt: medication.CreatedAt.UTC(),
		UpdatedAt: medication.UpdatedAt.UTC(),
	}
}

func (m medicationModel) toEntity() entities.Medication {
	return entities.Medication{
		MedicationID: m.ID,
		PatientID:    m.PatientID,
		Name:         m.Name,
		Dose:         m.Dose,
		Route:        entities.MedicationRoute(m.Route),
		Frequency:    m.Frequency,
		Status:       entities.MedicationStatus(m.Status),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toMedicationEntities(rows []medicationModel) []entities.Medication {
	items := make([]entities.Medication, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type administrationEventModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	MedicationID       string    `gorm:"column:medication_id"`
	AdministeredBy     string    `gorm:"column:administered_by"`
	AdministeredByName string    `gorm:"column:administered_by_name"`
	AdministeredAt     time.Time `gorm:"column:administered_at"`
	Notes              string    `gorm:"column:notes"`
}

func (administrationEventModel) TableName() string {
	return "medication_administration_events"
}

func (m administrationEventModel) toEntity() entities.MedicationAdministrationEvent {
	return entities.MedicationAdministrationEvent{
		EventID:            m.ID,
		MedicationID:       m.MedicationID,
		AdministeredBy:     m.AdministeredBy,
		AdministeredByName: m.AdministeredByName,
		AdministeredAt:     m.AdministeredAt.UTC(),
		Notes:              m.Notes,
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "records_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
