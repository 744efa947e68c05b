package treatment

import (
	"context"
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
	CreateTreatment(ctx context.Context, doctorID uuid.UUID, req *model.CreateTreatmentRequest) (*model.Treatment, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Treatment, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Treatment, error)
}

type service struct {
	repo    repository.TreatmentRepository
	tx      repository.TxRunner
	billing billing.Service
}

func NewService(repo repository.TreatmentRepository, tx repository.TxRunner, billing billing.Service) Service {
	return &service{repo: repo, tx: tx, billing: billing}
}

// CreateTreatment records a treatment and accrues its cost onto the
// patient's open bill in a single transaction.
func (s *service) CreateTreatment(ctx context.Context, doctorID uuid.UUID, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	now := time.Now().UTC()
	treatment := &model.Treatment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   req.PatientID,
		DoctorID:    doctorID,
		Description: req.Description,
		StartDate:   now,
		RoomID:      req.RoomID,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}

	err := s.tx.RunInTx(ctx, func(q sqlx.ExtContext) error {
		if err := s.repo.Create(ctx, q, treatment); err != nil {
			return fmt.Errorf("failed to create treatment: %w", err)
		}

		desc := treatment.Description
		if desc == "" {
			desc = "Treatment"
		}
		return s.billing.Accrue(ctx, q, model.Charge{
			PatientID:   treatment.PatientID,
			Source:      model.BillItemSourceTreatment,
			SourceRef:   treatment.ID,
			Description: desc,
			Amount:      treatment.Cost,
		})
	})
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to record treatment: %w", err))
	}
	return treatment, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Treatment, error) {
	treatments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list treatments: %w", err))
	}
	return treatments, nil
}

func (s *service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Treatment, error) {
	treatments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list treatments: %w", err))
	}
	return treatments, nil
}
