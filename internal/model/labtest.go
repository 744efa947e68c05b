package model

import (
	"time"

	"github.com/google/uuid"
)

type LabTestStatus string

const (
	LabTestStatusOrdered    LabTestStatus = "ordered"
	LabTestStatusInProgress LabTestStatus = "in_progress"
	LabTestStatusCompleted  LabTestStatus = "completed"
	LabTestStatusCancelled  LabTestStatus = "cancelled"
)

type LabTest struct {
	Base
	PatientID      uuid.UUID     `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	PhlebotomistID *uuid.UUID    `db:"phlebotomist_id" json:"phlebotomist_id,omitempty"`
	TestName       string        `db:"test_name" json:"test_name"`
	RequestedAt    time.Time     `db:"requested_at" json:"requested_at"`
	PerformedAt    *time.Time    `db:"performed_at" json:"performed_at,omitempty"`
	Result         string        `db:"result" json:"result,omitempty"`
	Status         LabTestStatus `db:"status" json:"status"`
	Cost           float64       `db:"cost" json:"cost"`
	Notes          string        `db:"notes" json:"notes,omitempty"`
}

type OrderLabTestRequest struct {
	PatientID uuid.UUID `json:"patient_id" form:"patient_id" binding:"required"`
	TestName  string    `json:"test_name" form:"test_name" binding:"required"`
	Cost      float64   `json:"cost" form:"cost" binding:"gte=0"`
	Notes     string    `json:"notes" form:"notes"`
}

type UpdateLabTestRequest struct {
	Status         *LabTestStatus `json:"status" form:"status"`
	Result         *string        `json:"result" form:"result"`
	PerformedAt    *time.Time     `json:"performed_at" form:"performed_at"`
	PhlebotomistID *uuid.UUID     `json:"phlebotomist_id" form:"phlebotomist_id"`
}

func (s LabTestStatus) Valid() bool {
	switch s {
	case LabTestStatusOrdered, LabTestStatusInProgress,
		LabTestStatusCompleted, LabTestStatusCancelled:
		return true
	}
	return false
}
