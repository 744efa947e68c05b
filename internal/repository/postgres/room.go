package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/hms-api/internal/model"
)

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, type, rate_per_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	room.CreatedAt = time.Now()
	room.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Type,
		room.RatePerDay,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := r.db.GetContext(ctx, &room, `SELECT * FROM rooms WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
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

func (r *roomRepository) List(ctx context.Context) ([]*model.Room, error) {
	var rooms []*model.Room
	err := r.db.SelectContext(ctx, &rooms, `SELECT * FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) Assign(ctx context.Context, assignment *model.RoomAssignment) error {
	query := `
		INSERT INTO room_assignments (id, patient_id, room_id, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.PatientID,
		assignment.RoomID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to assign room: %w", err)
	}
	return nil
}

func (r *roomRepository) EndAssignment(ctx context.Context, assignmentID uuid.UUID, at time.Time) error {
	query := `UPDATE room_assignments SET end_date = $1 WHERE id = $2 AND end_date IS NULL`
	result, err := r.db.ExecContext(ctx, query, at, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to end room assignment: %w", err)
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

func (r *roomRepository) ListAssignments(ctx context.Context, patientID uuid.UUID) ([]*model.RoomAssignment, error) {
	query := `SELECT * FROM room_assignments WHERE patient_id = $1 ORDER BY start_date DESC`
	var assignments []*model.RoomAssignment
	err := r.db.SelectContext(ctx, &assignments, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room assignments: %w", err)
	}
	return assignments, nil
}
