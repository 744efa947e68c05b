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

// GetOrCreate deduplicates the catalog by name. The upsert keeps concurrent
// inserts of the same name from violating the unique constraint.
func (r *medicationRepository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, name string, price float64) (*model.Medication, error) {
	var medication model.Medication
	err := sqlx.GetContext(ctx, q, &medication, `SELECT * FROM medications WHERE name = $1`, name)
	if err == nil {
		return &medication, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up medication: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO medications (id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, '', $3, $4, $4)
		ON CONFLICT (name) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING *
	`
	err = sqlx.GetContext(ctx, q, &medication, query, uuid.New(), name, price, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return &medication, nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	var medications []*model.Medication
	err := r.db.SelectContext(ctx, &medications, `SELECT * FROM medications ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}
