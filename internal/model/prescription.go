package model

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	Base
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	PharmacistID *uuid.UUID `db:"pharmacist_id" json:"pharmacist_id,omitempty"`
	Notes        string     `db:"notes" json:"notes,omitempty"`
}

type PrescriptionItem struct {
	Base
	PrescriptionID uuid.UUID  `db:"prescription_id" json:"prescription_id"`
	MedicationID   uuid.UUID  `db:"medication_id" json:"medication_id"`
	Dosage         string     `db:"dosage" json:"dosage,omitempty"`
	Quantity       int        `db:"quantity" json:"quantity"`
	UnitPrice      float64    `db:"unit_price" json:"unit_price"`
	Fulfilled      bool       `db:"fulfilled" json:"fulfilled"`
	FulfilledAt    *time.Time `db:"fulfilled_at" json:"fulfilled_at,omitempty"`
}

// MedDispense records a pharmacist handing out a prescription item.
type MedDispense struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PrescriptionItemID uuid.UUID `db:"prescription_item_id" json:"prescription_item_id"`
	PharmacistID       uuid.UUID `db:"pharmacist_id" json:"pharmacist_id"`
	DispensedAt        time.Time `db:"dispensed_at" json:"dispensed_at"`
	Quantity           int       `db:"quantity" json:"quantity"`
	Notes              string    `db:"notes" json:"notes,omitempty"`
}

type PrescriptionItemRequest struct {
	MedicationName string  `json:"medication_name" form:"medication_name" binding:"required"`
	Dosage         string  `json:"dosage" form:"dosage"`
	Quantity       int     `json:"quantity" form:"quantity" binding:"required,gte=1"`
	UnitPrice      float64 `json:"unit_price" form:"unit_price" binding:"gte=0"`
}

type CreatePrescriptionRequest struct {
	PatientID uuid.UUID                 `json:"patient_id" form:"patient_id" binding:"required"`
	Notes     string                    `json:"notes" form:"notes"`
	Items     []PrescriptionItemRequest `json:"items" binding:"required,min=1,dive"`
}

type DispenseRequest struct {
	Quantity int    `json:"quantity" form:"quantity" binding:"required,gte=1"`
	Notes    string `json:"notes" form:"notes"`
}

// PrescriptionWithItems is the read shape for doctor and patient views.
type PrescriptionWithItems struct {
	Prescription
	Items []*PrescriptionItem `json:"items"`
}
