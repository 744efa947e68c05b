package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meditrack/hms-api/internal/model"
)

func (r *prescriptionRepository) Create(ctx context.Context, q sqlx.ExtContext, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, patient_id, doctor_id, pharmacist_id, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		prescription.ID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.PharmacistID,
		prescription.Notes,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) CreateItem(ctx context.Context, q sqlx.ExtContext, item *model.PrescriptionItem) error {
	query := `
		INSERT INTO prescription_items (
			id, prescription_id, medication_id, dosage, quantity, unit_price,
			fulfilled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		item.ID,
		item.PrescriptionID,
		item.MedicationID,
		item.Dosage,
		item.Quantity,
		item.UnitPrice,
		item.Fulfilled,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription item: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, `SELECT * FROM prescriptions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) GetItem(ctx context.Context, id uuid.UUID) (*model.PrescriptionItem, error) {
	var item model.PrescriptionItem
	err := r.db.GetContext(ctx, &item, `SELECT * FROM prescription_items WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription item: %w", err)
	}
	return &item, nil
}

func (r *prescriptionRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE patient_id = $1 ORDER BY created_at DESC`
	var prescriptions []*model.Prescription
	err := r.db.SelectContext(ctx, &prescriptions, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE doctor_id = $1 ORDER BY created_at DESC`
	var prescriptions []*model.Prescription
	err := r.db.SelectContext(ctx, &prescriptions, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListItems(ctx context.Context, prescriptionID uuid.UUID) ([]*model.PrescriptionItem, error) {
	query := `SELECT * FROM prescription_items WHERE prescription_id = $1 ORDER BY created_at`
	var items []*model.PrescriptionItem
	err := r.db.SelectContext(ctx, &items, query, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescription items: %w", err)
	}
	return items, nil
}

func (r *prescriptionRepository) MarkItemFulfilled(ctx context.Context, q sqlx.ExtContext, itemID uuid.UUID, at time.Time) error {
	query := `
		UPDATE prescription_items
		SET fulfilled = true, fulfilled_at = $1, updated_at = $1
		WHERE id = $2
	`
	result, err := q.ExecContext(ctx, query, at, itemID)
	if err != nil {
		return fmt.Errorf("failed to mark item fulfilled: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *prescriptionRepository) CreateDispense(ctx context.Context, q sqlx.ExtContext, dispense *model.MedDispense) error {
	query := `
		INSERT INTO med_dispense (
			id, prescription_item_id, pharmacist_id, dispensed_at, quantity, notes
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.ExecContext(ctx, query,
		dispense.ID,
		dispense.PrescriptionItemID,
		dispense.PharmacistID,
		dispense.DispensedAt,
		dispense.Quantity,
		dispense.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to record dispense: %w", err)
	}
	return nil
}
