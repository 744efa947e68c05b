package room

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
	CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	ListRooms(ctx context.Context) ([]*model.Room, error)
	AssignRoom(ctx context.Context, req *model.AssignRoomRequest) (*model.RoomAssignment, error)
	EndAssignment(ctx context.Context, assignmentID uuid.UUID) error
	ListAssignments(ctx context.Context, patientID uuid.UUID) ([]*model.RoomAssignment, error)
}

type service struct {
	repo     repository.RoomRepository
	patients repository.PatientRepository
}

func NewService(repo repository.RoomRepository, patients repository.PatientRepository) Service {
	return &service{repo: repo, patients: patients}
}

func (s *service) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.Room, error) {
	now := time.Now().UTC()
	room := &model.Room{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		RatePerDay: req.RatePerDay,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to create room: %w", err))
	}
	return room, nil
}

func (s *service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("room", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to delete room: %w", err))
	}
	return nil
}

func (s *service) ListRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list rooms: %w", err))
	}
	return rooms, nil
}

func (s *service) AssignRoom(ctx context.Context, req *model.AssignRoomRequest) (*model.RoomAssignment, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get patient: %w", err))
	}
	if _, err := s.repo.Get(ctx, req.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("room", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get room: %w", err))
	}

	assignment := &model.RoomAssignment{
		ID:        uuid.New(),
		PatientID: req.PatientID,
		RoomID:    req.RoomID,
		StartDate: time.Now().UTC(),
		Notes:     req.Notes,
	}
	if err := s.repo.Assign(ctx, assignment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to assign room: %w", err))
	}
	return assignment, nil
}

func (s *service) EndAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	if err := s.repo.EndAssignment(ctx, assignmentID, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("room assignment", err)
		}
		return apperrors.Storage(fmt.Errorf("failed to end room assignment: %w", err))
	}
	return nil
}

func (s *service) ListAssignments(ctx context.Context, patientID uuid.UUID) ([]*model.RoomAssignment, error) {
	assignments, err := s.repo.ListAssignments(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list room assignments: %w", err))
	}
	return assignments, nil
}
