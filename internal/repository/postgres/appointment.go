package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/hms-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, scheduled_at, status, notes, actions,
			fee, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ScheduledAt,
		appointment.Status,
		appointment.Notes,
		appointment.Actions,
		appointment.Fee,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, `SELECT * FROM appointments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET doctor_id = $1, scheduled_at = $2, status = $3, notes = $4,
			actions = $5, fee = $6, updated_at = $7
		WHERE id = $8
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.DoctorID,
		appointment.ScheduledAt,
		appointment.Status,
		appointment.Notes,
		appointment.Actions,
		appointment.Fee,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

const appointmentWithNamesSelect = `
	SELECT a.*, p.first_name || ' ' || p.last_name AS patient_name,
		   d.first_name || ' ' || d.last_name AS doctor_name
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	LEFT JOIN doctors d ON d.id = a.doctor_id
`

// ListPending returns booked appointments soonest-first so admins work
// through the queue in order.
func (r *appointmentRepository) ListPending(ctx context.Context) ([]*model.AppointmentWithNames, error) {
	query := appointmentWithNamesSelect + `
		WHERE a.status = $1
		ORDER BY a.scheduled_at ASC
	`
	var appointments []*model.AppointmentWithNames
	err := r.db.SelectContext(ctx, &appointments, query, model.AppointmentStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending appointments: %w", err)
	}
	return appointments, nil
}

// ListForPatient is most-recent-first, matching the patient portal view.
func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	query := appointmentWithNamesSelect + `
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_at DESC
	`
	var appointments []*model.AppointmentWithNames
	err := r.db.SelectContext(ctx, &appointments, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	query := appointmentWithNamesSelect + `
		WHERE a.doctor_id = $1
		ORDER BY a.scheduled_at ASC
	`
	var appointments []*model.AppointmentWithNames
	err := r.db.SelectContext(ctx, &appointments, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}
