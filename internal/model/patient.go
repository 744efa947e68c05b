package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Base
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Phone       string     `db:"phone" json:"phone,omitempty"`
	Email       string     `db:"email" json:"email,omitempty"`
	Address     string     `db:"address" json:"address,omitempty"`
	// DoctorID is the patient's primary doctor, if one has been assigned.
	DoctorID *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
}

// PatientWithDoctor carries the joined doctor name for listings.
type PatientWithDoctor struct {
	Patient
	DoctorName *string `db:"doctor_name" json:"doctor_name,omitempty"`
}

type CreatePatientRequest struct {
	FirstName   string     `json:"first_name" form:"first_name" binding:"required"`
	LastName    string     `json:"last_name" form:"last_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth" form:"date_of_birth"`
	Phone       string     `json:"phone" form:"phone"`
	Email       string     `json:"email" form:"email" binding:"omitempty,email"`
	Address     string     `json:"address" form:"address"`
	DoctorID    *uuid.UUID `json:"doctor_id" form:"doctor_id"`
}

type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name" form:"first_name"`
	LastName    *string    `json:"last_name" form:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth" form:"date_of_birth"`
	Phone       *string    `json:"phone" form:"phone"`
	Email       *string    `json:"email" form:"email" binding:"omitempty,email"`
	Address     *string    `json:"address" form:"address"`
	DoctorID    *uuid.UUID `json:"doctor_id" form:"doctor_id"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
