package prescription

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
	CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.PrescriptionWithItems, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (*model.PrescriptionWithItems, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionWithItems, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionWithItems, error)
	DispenseItem(ctx context.Context, pharmacistID, itemID uuid.UUID, req *model.DispenseRequest) error
}

type service struct {
	repo    repository.PrescriptionRepository
	meds    repository.MedicationRepository
	tx      repository.TxRunner
	billing billing.Service
}

func NewService(repo repository.PrescriptionRepository, meds repository.MedicationRepository, tx repository.TxRunner, billing billing.Service) Service {
	return &service{repo: repo, meds: meds, tx: tx, billing: billing}
}

// CreatePrescription writes the prescription, resolves each medication
// against the catalog (creating unknown ones), and accrues one charge
// per item onto the patient's open bill. Everything happens in one
// transaction so a failed item leaves neither prescription nor charges.
func (s *service) CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.PrescriptionWithItems, error) {
	now := time.Now().UTC()
	prescription := &model.Prescription{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		Notes:     req.Notes,
	}

	items := make([]*model.PrescriptionItem, 0, len(req.Items))
	err := s.tx.RunInTx(ctx, func(q sqlx.ExtContext) error {
		if err := s.repo.Create(ctx, q, prescription); err != nil {
			return fmt.Errorf("failed to create prescription: %w", err)
		}

		for _, ir := range req.Items {
			med, err := s.meds.GetOrCreate(ctx, q, ir.MedicationName, ir.UnitPrice)
			if err != nil {
				return fmt.Errorf("failed to resolve medication %q: %w", ir.MedicationName, err)
			}

			unitPrice := ir.UnitPrice
			if unitPrice == 0 {
				unitPrice = med.Price
			}

			item := &model.PrescriptionItem{
				Base: model.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				PrescriptionID: prescription.ID,
				MedicationID:   med.ID,
				Dosage:         ir.Dosage,
				Quantity:       ir.Quantity,
				UnitPrice:      unitPrice,
			}
			if err := s.repo.CreateItem(ctx, q, item); err != nil {
				return fmt.Errorf("failed to create prescription item: %w", err)
			}
			items = append(items, item)

			if err := s.billing.Accrue(ctx, q, model.Charge{
				PatientID:   prescription.PatientID,
				Source:      model.BillItemSourceMedication,
				SourceRef:   item.ID,
				Description: med.Name,
				Amount:      unitPrice * float64(ir.Quantity),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to record prescription: %w", err))
	}

	return &model.PrescriptionWithItems{Prescription: *prescription, Items: items}, nil
}

func (s *service) GetPrescription(ctx context.Context, id uuid.UUID) (*model.PrescriptionWithItems, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get prescription: %w", err))
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list prescription items: %w", err))
	}
	return &model.PrescriptionWithItems{Prescription: *prescription, Items: items}, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionWithItems, error) {
	prescriptions, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list prescriptions: %w", err))
	}
	return s.attachItems(ctx, prescriptions)
}

func (s *service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PrescriptionWithItems, error) {
	prescriptions, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list prescriptions: %w", err))
	}
	return s.attachItems(ctx, prescriptions)
}

func (s *service) attachItems(ctx context.Context, prescriptions []*model.Prescription) ([]*model.PrescriptionWithItems, error) {
	out := make([]*model.PrescriptionWithItems, 0, len(prescriptions))
	for _, p := range prescriptions {
		items, err := s.repo.ListItems(ctx, p.ID)
		if err != nil {
			return nil, apperrors.Storage(fmt.Errorf("failed to list prescription items: %w", err))
		}
		out = append(out, &model.PrescriptionWithItems{Prescription: *p, Items: items})
	}
	return out, nil
}

// DispenseItem marks a prescription item fulfilled and records who
// dispensed it. Dispensing does not accrue charges; the item was
// charged when prescribed.
func (s *service) DispenseItem(ctx context.Context, pharmacistID, itemID uuid.UUID, req *model.DispenseRequest) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("prescription item", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to get prescription item: %w", err))
	}
	if item.Fulfilled {
		return apperrors.Conflict("prescription item already dispensed")
	}
	if req.Quantity > item.Quantity {
		return apperrors.Validation("dispense quantity exceeds prescribed quantity")
	}

	now := time.Now().UTC()
	err = s.tx.RunInTx(ctx, func(q sqlx.ExtContext) error {
		if err := s.repo.MarkItemFulfilled(ctx, q, itemID, now); err != nil {
			return fmt.Errorf("failed to mark item fulfilled: %w", err)
		}
		return s.repo.CreateDispense(ctx, q, &model.MedDispense{
			ID:                 uuid.New(),
			PrescriptionItemID: itemID,
			PharmacistID:       pharmacistID,
			DispensedAt:        now,
			Quantity:           req.Quantity,
			Notes:              req.Notes,
		})
	})
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to dispense prescription item: %w", err))
	}
	return nil
}
