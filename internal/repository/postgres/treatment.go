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

// Create takes an executor so the insert can share a transaction with the
// billing accrual it triggers.
func (r *treatmentRepository) Create(ctx context.Context, q sqlx.ExtContext, treatment *model.Treatment) error {
	query := `
		INSERT INTO treatments (
			id, patient_id, doctor_id, description, start_date, end_date,
			room_id, cost, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	treatment.CreatedAt = time.Now()
	treatment.UpdatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		treatment.ID,
		treatment.PatientID,
		treatment.DoctorID,
		treatment.Description,
		treatment.StartDate,
		treatment.EndDate,
		treatment.RoomID,
		treatment.Cost,
		treatment.Notes,
		treatment.CreatedAt,
		treatment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}
	return nil
}

func (r *treatmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Treatment, error) {
	var treatment model.Treatment
	err := r.db.GetContext(ctx, &treatment, `SELECT * FROM treatments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	return &treatment, nil
}

func (r *treatmentRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE doctor_id = $1 ORDER BY start_date DESC`
	var treatments []*model.Treatment
	err := r.db.SelectContext(ctx, &treatments, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor treatments: %w", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE patient_id = $1 ORDER BY start_date DESC`
	var treatments []*model.Treatment
	err := r.db.SelectContext(ctx, &treatments, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient treatments: %w", err)
	}
	return treatments, nil
}
