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

func (r *labTestRepository) Create(ctx context.Context, test *model.LabTest) error {
	query := `
		INSERT INTO lab_tests (
			id, patient_id, doctor_id, phlebotomist_id, test_name, requested_at,
			performed_at, result, status, cost, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	test.CreatedAt = time.Now()
	test.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		test.ID,
		test.PatientID,
		test.DoctorID,
		test.PhlebotomistID,
		test.TestName,
		test.RequestedAt,
		test.PerformedAt,
		test.Result,
		test.Status,
		test.Cost,
		test.Notes,
		test.CreatedAt,
		test.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

func (r *labTestRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	var test model.LabTest
	err := r.db.GetContext(ctx, &test, `SELECT * FROM lab_tests WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab test: %w", err)
	}
	return &test, nil
}

// GetForUpdate locks the row for the rest of the transaction so the
// completed-transition check cannot race a concurrent status update.
func (r *labTestRepository) GetForUpdate(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*model.LabTest, error) {
	var test model.LabTest
	err := sqlx.GetContext(ctx, q, &test, `SELECT * FROM lab_tests WHERE id = $1 FOR UPDATE`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock lab test: %w", err)
	}
	return &test, nil
}

func (r *labTestRepository) Update(ctx context.Context, q sqlx.ExtContext, test *model.LabTest) error {
	query := `
		UPDATE lab_tests
		SET phlebotomist_id = $1, performed_at = $2, result = $3, status = $4,
			cost = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	test.UpdatedAt = time.Now()

	result, err := q.ExecContext(ctx, query,
		test.PhlebotomistID,
		test.PerformedAt,
		test.Result,
		test.Status,
		test.Cost,
		test.Notes,
		test.UpdatedAt,
		test.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab test: %w", err)
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

func (r *labTestRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	query := `SELECT * FROM lab_tests WHERE patient_id = $1 ORDER BY requested_at DESC`
	var tests []*model.LabTest
	err := r.db.SelectContext(ctx, &tests, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient lab tests: %w", err)
	}
	return tests, nil
}

func (r *labTestRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error) {
	query := `SELECT * FROM lab_tests WHERE doctor_id = $1 ORDER BY requested_at DESC`
	var tests []*model.LabTest
	err := r.db.SelectContext(ctx, &tests, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor lab tests: %w", err)
	}
	return tests, nil
}
