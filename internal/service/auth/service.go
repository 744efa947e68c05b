package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/hms-api/internal/config"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	"github.com/meditrack/hms-api/pkg/auth"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type Service interface {
	AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.TokenResponse, error)
	DoctorLogin(ctx context.Context, req *model.DoctorLoginRequest) (*model.TokenResponse, error)
	PatientLogin(ctx context.Context, req *model.PatientLoginRequest) (*model.TokenResponse, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	admin    config.AdminConfig
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	tokens   repository.TokenRepository
	jwt      auth.JWTService
}

func NewService(admin config.AdminConfig, doctors repository.DoctorRepository, patients repository.PatientRepository, tokens repository.TokenRepository, jwt auth.JWTService) Service {
	return &service{admin: admin, doctors: doctors, patients: patients, tokens: tokens, jwt: jwt}
}

// AdminLogin checks the configured admin credentials. The admin has no
// database row; its subject id is the zero UUID.
func (s *service) AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.TokenResponse, error) {
	if req.Username != s.admin.Username || req.Password != s.admin.Password {
		return nil, apperrors.Authentication("invalid username or password")
	}
	return s.issue(model.RoleAdmin, uuid.Nil, req.Username)
}

// DoctorLogin authenticates a doctor by contact and password. Credentials
// are compared in plaintext; known weakness, kept as-is.
func (s *service) DoctorLogin(ctx context.Context, req *model.DoctorLoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctors.GetByContact(ctx, req.Contact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Authentication("invalid contact or password")
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to look up doctor: %w", err))
	}
	if doctor.Password != req.Password {
		return nil, apperrors.Authentication("invalid contact or password")
	}
	return s.issue(model.RoleDoctor, doctor.ID, doctor.FullName())
}

// PatientLogin signs a patient in by record id, matching the patient
// portal's login-by-id flow.
func (s *service) PatientLogin(ctx context.Context, req *model.PatientLoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Authentication("unknown patient id")
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to look up patient: %w", err))
	}
	return s.issue(model.RolePatient, patient.ID, patient.FullName())
}

func (s *service) issue(role model.Role, subjectID uuid.UUID, name string) (*model.TokenResponse, error) {
	token, err := s.jwt.Generate(role, subjectID, name)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to issue token: %w", err))
	}
	return &model.TokenResponse{Token: token, Role: role, Name: name}, nil
}

// Logout revokes the session token for its remaining lifetime. With no
// token store configured the token simply runs out on its own.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return apperrors.Authentication("invalid token")
	}
	if s.tokens == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to revoke token: %w", err))
	}
	return nil
}
