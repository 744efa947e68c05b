package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/hms-api/internal/email"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
	"github.com/meditrack/hms-api/pkg/logger"
)

type Service interface {
	Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Confirm(ctx context.Context, id uuid.UUID, req *model.ConfirmAppointmentRequest) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, actor *model.AuthContext) (*model.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID, doctorID uuid.UUID) (*model.Appointment, error)
	ListPending(ctx context.Context) ([]*model.AppointmentWithNames, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentWithNames, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentWithNames, error)
}

type service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	email    email.Service
	logger   *logger.Logger
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository, doctors repository.DoctorRepository, email email.Service, logger *logger.Logger) Service {
	return &service{repo: repo, patients: patients, doctors: doctors, email: email, logger: logger}
}

// Book creates an appointment in the booked state. No doctor is assigned
// yet; an admin does that on confirmation.
func (s *service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get patient: %w", err))
	}

	now := time.Now().UTC()
	appointment := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patientID,
		ScheduledAt: req.ScheduledAt,
		Status:      model.AppointmentStatusBooked,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to book appointment: %w", err))
	}
	return appointment, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get appointment: %w", err))
	}
	return appointment, nil
}

// Confirm assigns a doctor and moves a booked appointment to confirmed.
// A confirmation without a doctor is rejected and the appointment stays
// untouched. The confirmation email is best effort; a mail failure never
// fails the request.
func (s *service) Confirm(ctx context.Context, id uuid.UUID, req *model.ConfirmAppointmentRequest) (*model.Appointment, error) {
	if req.DoctorID == nil {
		return nil, apperrors.Validation("a doctor must be assigned to confirm an appointment")
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentStatusBooked {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot confirm appointment in status %q", appointment.Status))
	}

	doctor, err := s.doctors.Get(ctx, *req.DoctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to get doctor: %w", err))
	}

	appointment.DoctorID = req.DoctorID
	appointment.Status = model.AppointmentStatusConfirmed
	if req.ScheduledAt != nil {
		appointment.ScheduledAt = *req.ScheduledAt
	}
	if req.Actions != nil {
		appointment.Actions = *req.Actions
	}
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to confirm appointment: %w", err))
	}

	s.notifyConfirmed(ctx, appointment, doctor)
	return appointment, nil
}

func (s *service) notifyConfirmed(ctx context.Context, appointment *model.Appointment, doctor *model.Doctor) {
	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		s.logger.Error(err, "skipping confirmation email, patient lookup failed",
			"appointment_id", appointment.ID.String())
		return
	}
	if err := s.email.SendAppointmentConfirmation(patient.Email, patient.FullName(), doctor.FullName(), appointment.ScheduledAt); err != nil {
		s.logger.Error(err, "confirmation email failed",
			"appointment_id", appointment.ID.String())
	}
}

// Update is the admin-only generic mutator: only supplied fields change.
func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid appointment status %q", *req.Status))
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ScheduledAt != nil {
		appointment.ScheduledAt = *req.ScheduledAt
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.DoctorID != nil {
		if _, err := s.doctors.Get(ctx, *req.DoctorID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("doctor", err)
			}
			return nil, apperrors.Storage(fmt.Errorf("failed to get doctor: %w", err))
		}
		appointment.DoctorID = req.DoctorID
	}
	if req.Actions != nil {
		appointment.Actions = *req.Actions
	}
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to update appointment: %w", err))
	}
	return appointment, nil
}

// Cancel moves an appointment to cancelled. Patients may only cancel
// their own; admins may cancel any. Completed and already cancelled
// appointments stay as they are.
func (s *service) Cancel(ctx context.Context, id uuid.UUID, actor *model.AuthContext) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Is(model.RolePatient) && appointment.PatientID != actor.SubjectID {
		return nil, apperrors.Authorization("appointment belongs to another patient")
	}
	switch appointment.Status {
	case model.AppointmentStatusCompleted:
		return nil, apperrors.Conflict("completed appointments cannot be cancelled")
	case model.AppointmentStatusCancelled:
		return nil, apperrors.Conflict("appointment is already cancelled")
	}

	appointment.Status = model.AppointmentStatusCancelled
	appointment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to cancel appointment: %w", err))
	}
	return appointment, nil
}

// Complete marks a confirmed appointment completed. Only the assigned
// doctor may complete it.
func (s *service) Complete(ctx context.Context, id uuid.UUID, doctorID uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID == nil || *appointment.DoctorID != doctorID {
		return nil, apperrors.Authorization("appointment is assigned to another doctor")
	}
	if appointment.Status != model.AppointmentStatusConfirmed {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot complete appointment in status %q", appointment.Status))
	}

	appointment.Status = model.AppointmentStatusCompleted
	appointment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to complete appointment: %w", err))
	}
	return appointment, nil
}

func (s *service) ListPending(ctx context.Context) ([]*model.AppointmentWithNames, error) {
	appointments, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list pending appointments: %w", err))
	}
	return appointments, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}

func (s *service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}
