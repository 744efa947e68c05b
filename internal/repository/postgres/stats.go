package postgres

import (
	"context"
	"fmt"

	"github.com/meditrack/hms-api/internal/model"
)

func (r *statsRepository) DashboardCounts(ctx context.Context) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM patients) AS patients,
			(SELECT COUNT(*) FROM doctors) AS doctors,
			(SELECT COUNT(*) FROM rooms) AS rooms,
			(SELECT COUNT(*) FROM bills) AS bills,
			(SELECT COUNT(*) FROM appointments) AS appointments
	`
	var stats model.DashboardStats
	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard counts: %w", err)
	}
	return &stats, nil
}
