package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type Service interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
}

type service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) Service {
	return &service{repo: repo}
}

func (s *service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	now := time.Now().UTC()
	doctor := &model.Doctor{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		Contact:        req.Contact,
		Department:     req.Department,
		Availability:   req.Availability,
		Password:       req.Password,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("a doctor with this contact already exists")
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to create doctor: %w", err))
	}
	return doctor, nil
}

func (s *service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get doctor: %w", err))
	}
	return doctor, nil
}

func (s *service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		doctor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doctor.LastName = *req.LastName
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Contact != nil {
		doctor.Contact = *req.Contact
	}
	if req.Department != nil {
		doctor.Department = *req.Department
	}
	if req.Availability != nil {
		doctor.Availability = *req.Availability
	}
	if req.Password != nil {
		doctor.Password = *req.Password
	}
	doctor.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, doctor); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("a doctor with this contact already exists")
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to update doctor: %w", err))
	}
	return doctor, nil
}

func (s *service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("doctor", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to delete doctor: %w", err))
	}
	return nil
}

func (s *service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list doctors: %w", err))
	}
	return doctors, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
