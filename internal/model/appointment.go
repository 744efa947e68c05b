package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment moves booked -> confirmed -> completed, or to cancelled.
// DoctorID stays nil until an admin confirms the booking.
type Appointment struct {
	Base
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID    *uuid.UUID        `db:"doctor_id" json:"doctor_id,omitempty"`
	ScheduledAt time.Time         `db:"scheduled_at" json:"scheduled_at"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	Actions     string            `db:"actions" json:"actions,omitempty"`
	Fee         float64           `db:"fee" json:"fee"`
}

// AppointmentWithNames carries joined patient/doctor names for listings.
type AppointmentWithNames struct {
	Appointment
	PatientName string  `db:"patient_name" json:"patient_name"`
	DoctorName  *string `db:"doctor_name" json:"doctor_name,omitempty"`
}

type BookAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" form:"scheduled_at" binding:"required" time_format:"2006-01-02 15:04"`
	Notes       string    `json:"notes" form:"notes"`
}

type ConfirmAppointmentRequest struct {
	DoctorID    *uuid.UUID `json:"doctor_id" form:"doctor_id"`
	ScheduledAt *time.Time `json:"scheduled_at" form:"scheduled_at" time_format:"2006-01-02 15:04"`
	Actions     *string    `json:"actions" form:"actions"`
}

// UpdateAppointmentRequest is the admin-only generic mutator: only the
// supplied fields change.
type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time         `json:"scheduled_at" form:"scheduled_at" time_format:"2006-01-02 15:04"`
	Status      *AppointmentStatus `json:"status" form:"status"`
	DoctorID    *uuid.UUID         `json:"doctor_id" form:"doctor_id"`
	Actions     *string            `json:"actions" form:"actions"`
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}
