package model

import (
	"time"

	"github.com/google/uuid"
)

// BillItemSource tags a bill item with the kind of chargeable event that
// produced it.
type BillItemSource string

const (
	BillItemSourceTreatment  BillItemSource = "treatment"
	BillItemSourceMedication BillItemSource = "medication"
	BillItemSourceLabTest    BillItemSource = "lab_test"
)

// Bill accumulates charges for a patient until settled. At most one bill per
// patient has Paid == false at any time; the accrual engine maintains that
// invariant.
type Bill struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	TotalAmount float64    `db:"total_amount" json:"total_amount"`
	Paid        bool       `db:"paid" json:"paid"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
}

// BillItem is an immutable, append-only record of a single charge. Cost
// corrections require compensating entries; there is no adjustment path.
type BillItem struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	BillID      uuid.UUID      `db:"bill_id" json:"bill_id"`
	SourceType  BillItemSource `db:"source_type" json:"source_type"`
	SourceRef   uuid.UUID      `db:"source_ref" json:"source_ref"`
	Description string         `db:"description" json:"description"`
	Amount      float64        `db:"amount" json:"amount"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Charge describes a chargeable event handed to the accrual engine.
type Charge struct {
	PatientID   uuid.UUID
	Source      BillItemSource
	SourceRef   uuid.UUID
	Description string
	Amount      float64
}

// BillWithPatient carries the joined patient name for admin listings.
type BillWithPatient struct {
	Bill
	PatientName string `db:"patient_name" json:"patient_name"`
}

// BillWithItems is the detail read shape.
type BillWithItems struct {
	Bill
	Items []*BillItem `json:"items"`
}
