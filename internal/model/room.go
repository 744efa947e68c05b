package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Base
	RoomNumber string  `db:"room_number" json:"room_number"`
	Type       string  `db:"type" json:"type,omitempty"`
	RatePerDay float64 `db:"rate_per_day" json:"rate_per_day"`
}

type RoomAssignment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	RoomID    uuid.UUID  `db:"room_id" json:"room_id"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	Notes     string     `db:"notes" json:"notes,omitempty"`
}

type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number" form:"room_number" binding:"required"`
	Type       string  `json:"type" form:"type"`
	RatePerDay float64 `json:"rate_per_day" form:"rate_per_day" binding:"gte=0"`
}

type AssignRoomRequest struct {
	PatientID uuid.UUID `json:"patient_id" form:"patient_id" binding:"required"`
	RoomID    uuid.UUID `json:"room_id" form:"room_id" binding:"required"`
	Notes     string    `json:"notes" form:"notes"`
}
