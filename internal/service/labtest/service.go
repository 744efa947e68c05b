package labtest

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
	"github.com/meditrack/hms-api/internal/service/billing"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type Service interface {
	OrderLabTest(ctx context.Context, doctorID uuid.UUID, req *model.OrderLabTestRequest) (*model.LabTest, error)
	GetLabTest(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
	UpdateLabTest(ctx context.Context, id uuid.UUID, req *model.UpdateLabTestRequest) (*model.LabTest, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error)
}

type service struct {
	repo    repository.LabTestRepository
	tx      repository.TxRunner
	billing billing.Service
}

func NewService(repo repository.LabTestRepository, tx repository.TxRunner, billing billing.Service) Service {
	return &service{repo: repo, tx: tx, billing: billing}
}

// OrderLabTest records a new test in the ordered state. Nothing is
// billed at order time; the charge accrues when the test completes.
func (s *service) OrderLabTest(ctx context.Context, doctorID uuid.UUID, req *model.OrderLabTestRequest) (*model.LabTest, error) {
	now := time.Now().UTC()
	test := &model.LabTest{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   req.PatientID,
		DoctorID:    doctorID,
		TestName:    req.TestName,
		RequestedAt: now,
		Status:      model.LabTestStatusOrdered,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, test); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to order lab test: %w", err))
	}
	return test, nil
}

func (s *service) GetLabTest(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	test, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("lab test", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get lab test: %w", err))
	}
	return test, nil
}

// UpdateLabTest applies partial updates to a test. The charge accrues
// exactly once, on the transition into completed; re-saving an already
// completed test never bills again. The row is locked while the
// transition is decided so two concurrent completions cannot both see
// the prior state.
func (s *service) UpdateLabTest(ctx context.Context, id uuid.UUID, req *model.UpdateLabTestRequest) (*model.LabTest, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid lab test status %q", *req.Status))
	}

	var test *model.LabTest
	err := s.tx.RunInTx(ctx, func(q sqlx.ExtContext) error {
		var err error
		test, err = s.repo.GetForUpdate(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to lock lab test: %w", err)
		}

		wasCompleted := test.Status == model.LabTestStatusCompleted
		if req.Status != nil {
			test.Status = *req.Status
		}
		if req.Result != nil {
			test.Result = *req.Result
		}
		if req.PerformedAt != nil {
			test.PerformedAt = req.PerformedAt
		}
		if req.PhlebotomistID != nil {
			test.PhlebotomistID = req.PhlebotomistID
		}
		test.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, q, test); err != nil {
			return fmt.Errorf("failed to update lab test: %w", err)
		}

		if !wasCompleted && test.Status == model.LabTestStatusCompleted {
			return s.billing.Accrue(ctx, q, model.Charge{
				PatientID:   test.PatientID,
				Source:      model.BillItemSourceLabTest,
				SourceRef:   test.ID,
				Description: test.TestName,
				Amount:      test.Cost,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("lab test", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to update lab test: %w", err))
	}
	return test, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	tests, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list lab tests: %w", err))
	}
	return tests, nil
}

func (s *service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error) {
	tests, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list lab tests: %w", err))
	}
	return tests, nil
}
