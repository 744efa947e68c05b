package model

import (
	"time"

	"github.com/google/uuid"
)

type Treatment struct {
	Base
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Description string     `db:"description" json:"description,omitempty"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	RoomID      *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	Cost        float64    `db:"cost" json:"cost"`
	Notes       string     `db:"notes" json:"notes,omitempty"`
}

type CreateTreatmentRequest struct {
	PatientID   uuid.UUID  `json:"patient_id" form:"patient_id" binding:"required"`
	Description string     `json:"description" form:"description"`
	Cost        float64    `json:"cost" form:"cost" binding:"gte=0"`
	RoomID      *uuid.UUID `json:"room_id" form:"room_id"`
	Notes       string     `json:"notes" form:"notes"`
}
