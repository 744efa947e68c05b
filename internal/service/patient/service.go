package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type Service interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context) ([]*model.PatientWithDoctor, error)
}

type service struct {
	repo    repository.PatientRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.PatientRepository, doctors repository.DoctorRepository) Service {
	return &service{repo: repo, doctors: doctors}
}

func (s *service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req.DoctorID != nil {
		if err := s.checkDoctor(ctx, *req.DoctorID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	patient := &model.Patient{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		DoctorID:    req.DoctorID,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to create patient: %w", err))
	}
	return patient, nil
}

func (s *service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get patient: %w", err))
	}
	return patient, nil
}

func (s *service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.DoctorID != nil {
		if err := s.checkDoctor(ctx, *req.DoctorID); err != nil {
			return nil, err
		}
		patient.DoctorID = req.DoctorID
	}
	patient.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to update patient: %w", err))
	}
	return patient, nil
}

// DeletePatient removes the patient. Dependent rows (appointments,
// treatments, prescriptions, lab tests, bills) go with it through the
// schema's cascade rules.
func (s *service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("patient", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to delete patient: %w", err))
	}
	return nil
}

func (s *service) ListPatients(ctx context.Context) ([]*model.PatientWithDoctor, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}

func (s *service) checkDoctor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.doctors.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("doctor", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to get doctor: %w", err))
	}
	return nil
}
