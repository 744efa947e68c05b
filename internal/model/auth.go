package model

import (
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// AuthContext is the request-scoped identity. The auth middleware builds it
// once per request from the bearer token and hands it to handlers through the
// gin context; nothing else carries login state.
type AuthContext struct {
	Role      Role      `json:"role"`
	SubjectID uuid.UUID `json:"subject_id"`
	Name      string    `json:"name"`
	TokenID   string    `json:"-"`
}

func (a *AuthContext) Is(role Role) bool {
	return a != nil && a.Role == role
}

type AdminLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type DoctorLoginRequest struct {
	Contact  string `json:"contact" form:"contact" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// PatientLoginRequest identifies a patient by id only, matching the patient
// portal's login-by-id flow.
type PatientLoginRequest struct {
	PatientID uuid.UUID `json:"patient_id" form:"patient_id" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

var ErrInvalidCredentials = errors.New("invalid credentials")
