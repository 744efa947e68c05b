package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
	"github.com/meditrack/hms-api/pkg/metrics"
)

// Service maintains the billing ledger. Each patient has at most one
// open bill at a time; charges accrue onto it and settling closes it.
type Service interface {
	Accrue(ctx context.Context, q sqlx.ExtContext, charge model.Charge) error
	GetBill(ctx context.Context, id uuid.UUID) (*model.BillWithItems, error)
	GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.BillWithItems, error)
	ListBills(ctx context.Context) ([]*model.BillWithPatient, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error)
	SettleBill(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    repository.BillingRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.BillingRepository, m *metrics.Metrics) Service {
	return &service{repo: repo, metrics: m}
}

// Accrue appends a charge to the patient's open bill, creating the bill
// if none exists. It must run inside the same transaction as the insert
// that produced the charge, so a failed insert never leaves a dangling
// bill item. The open bill row is locked for the duration of the
// transaction to keep concurrent accruals from opening duplicate bills.
func (s *service) Accrue(ctx context.Context, q sqlx.ExtContext, charge model.Charge) error {
	bill, err := s.repo.GetOpenBillForUpdate(ctx, q, charge.PatientID)
	if err != nil {
		return fmt.Errorf("failed to lock open bill: %w", err)
	}

	now := time.Now().UTC()
	if bill == nil {
		bill = &model.Bill{
			ID:        uuid.New(),
			PatientID: charge.PatientID,
			CreatedAt: now,
		}
		if err := s.repo.CreateBill(ctx, q, bill); err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}
		if s.metrics != nil {
			s.metrics.BillsOpened.Inc()
		}
	}

	item := &model.BillItem{
		ID:          uuid.New(),
		CreatedAt:   now,
		BillID:      bill.ID,
		SourceType:  charge.Source,
		SourceRef:   charge.SourceRef,
		Description: charge.Description,
		Amount:      charge.Amount,
	}
	if err := s.repo.AddItem(ctx, q, item); err != nil {
		return fmt.Errorf("failed to add bill item: %w", err)
	}

	if err := s.repo.AddToTotal(ctx, q, bill.ID, charge.Amount); err != nil {
		return fmt.Errorf("failed to update bill total: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ChargesAccrued.WithLabelValues(string(charge.Source)).Inc()
		s.metrics.AccruedAmount.WithLabelValues(string(charge.Source)).Add(charge.Amount)
	}
	return nil
}

func (s *service) GetBill(ctx context.Context, id uuid.UUID) (*model.BillWithItems, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("bill", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get bill: %w", err))
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list bill items: %w", err))
	}
	return &model.BillWithItems{Bill: *bill, Items: items}, nil
}

func (s *service) GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.BillWithItems, error) {
	bill, err := s.repo.GetOpenBill(ctx, patientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("open bill", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get open bill: %w", err))
	}

	items, err := s.repo.ListItems(ctx, bill.ID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list bill items: %w", err))
	}
	return &model.BillWithItems{Bill: *bill, Items: items}, nil
}

func (s *service) ListBills(ctx context.Context) ([]*model.BillWithPatient, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list bills: %w", err))
	}
	return bills, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	bills, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list patient bills: %w", err))
	}
	return bills, nil
}

// SettleBill marks a bill paid. A bill that is already paid, or does
// not exist, settles nothing.
func (s *service) SettleBill(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkPaid(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("open bill", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to settle bill: %w", err))
	}
	if s.metrics != nil {
		s.metrics.BillsSettled.Inc()
	}
	return nil
}
