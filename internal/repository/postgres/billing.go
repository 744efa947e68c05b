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

// GetOpenBillForUpdate returns the patient's unpaid bill, locked for the rest
// of the transaction. Returns (nil, nil) when the patient has no open bill.
func (r *billingRepository) GetOpenBillForUpdate(ctx context.Context, q sqlx.ExtContext, patientID uuid.UUID) (*model.Bill, error) {
	query := `
		SELECT * FROM bills
		WHERE patient_id = $1 AND NOT paid
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`
	var bill model.Bill
	err := sqlx.GetContext(ctx, q, &bill, query, patientID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock open bill: %w", err)
	}
	return &bill, nil
}

func (r *billingRepository) CreateBill(ctx context.Context, q sqlx.ExtContext, bill *model.Bill) error {
	query := `
		INSERT INTO bills (id, patient_id, total_amount, paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	bill.CreatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		bill.ID,
		bill.PatientID,
		bill.TotalAmount,
		bill.Paid,
		bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *billingRepository) AddItem(ctx context.Context, q sqlx.ExtContext, item *model.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, source_type, source_ref, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	item.CreatedAt = time.Now()

	_, err := q.ExecContext(ctx, query,
		item.ID,
		item.BillID,
		item.SourceType,
		item.SourceRef,
		item.Description,
		item.Amount,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append bill item: %w", err)
	}
	return nil
}

func (r *billingRepository) AddToTotal(ctx context.Context, q sqlx.ExtContext, billID uuid.UUID, amount float64) error {
	query := `UPDATE bills SET total_amount = total_amount + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, billID)
	if err != nil {
		return fmt.Errorf("failed to update bill total: %w", err)
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

func (r *billingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.GetContext(ctx, &bill, `SELECT * FROM bills WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billingRepository) GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.Bill, error) {
	query := `SELECT * FROM bills WHERE patient_id = $1 AND NOT paid ORDER BY created_at DESC LIMIT 1`
	var bill model.Bill
	err := r.db.GetContext(ctx, &bill, query, patientID)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open bill: %w", err)
	}
	return &bill, nil
}

func (r *billingRepository) ListItems(ctx context.Context, billID uuid.UUID) ([]*model.BillItem, error) {
	query := `SELECT * FROM bill_items WHERE bill_id = $1 ORDER BY created_at`
	var items []*model.BillItem
	err := r.db.SelectContext(ctx, &items, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill items: %w", err)
	}
	return items, nil
}

func (r *billingRepository) List(ctx context.Context) ([]*model.BillWithPatient, error) {
	query := `
		SELECT b.*, p.first_name || ' ' || p.last_name AS patient_name
		FROM bills b
		JOIN patients p ON p.id = b.patient_id
		ORDER BY b.created_at DESC
	`
	var bills []*model.BillWithPatient
	err := r.db.SelectContext(ctx, &bills, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (r *billingRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	query := `SELECT * FROM bills WHERE patient_id = $1 ORDER BY created_at DESC`
	var bills []*model.Bill
	err := r.db.SelectContext(ctx, &bills, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient bills: %w", err)
	}
	return bills, nil
}

// MarkPaid settles an open bill. The paid guard keeps a settled bill from
// being settled twice.
func (r *billingRepository) MarkPaid(ctx context.Context, billID uuid.UUID, at time.Time) error {
	query := `UPDATE bills SET paid = true, paid_at = $1 WHERE id = $2 AND NOT paid`
	result, err := r.db.ExecContext(ctx, query, at, billID)
	if err != nil {
		return fmt.Errorf("failed to mark bill paid: %w", err)
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
