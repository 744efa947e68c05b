package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meditrack/hms-api/internal/model"
)

// All repository interfaces in one file. Methods that take a q sqlx.ExtContext
// run on whatever executor they are handed, a *sqlx.DB or a *sqlx.Tx; the
// accrual path uses that to keep a chargeable write and its billing side
// effects in one transaction.
type (
	// TxRunner executes fn inside a single transaction; fn's executor must be
	// passed to every repository call made within it.
	TxRunner interface {
		RunInTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.PatientWithDoctor, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByContact(ctx context.Context, contact string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		ListPending(ctx context.Context) ([]*model.AppointmentWithNames, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentWithNames, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentWithNames, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, q sqlx.ExtContext, treatment *model.Treatment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Treatment, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Treatment, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Treatment, error)
	}

	MedicationRepository interface {
		// GetOrCreate looks the catalog up by name, inserting a new entry when
		// the name is unknown.
		GetOrCreate(ctx context.Context, q sqlx.ExtContext, name string, price float64) (*model.Medication, error)
		List(ctx context.Context) ([]*model.Medication, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, q sqlx.ExtContext, prescription *model.Prescription) error
		CreateItem(ctx context.Context, q sqlx.ExtContext, item *model.PrescriptionItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		GetItem(ctx context.Context, id uuid.UUID) (*model.PrescriptionItem, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error)
		ListItems(ctx context.Context, prescriptionID uuid.UUID) ([]*model.PrescriptionItem, error)
		MarkItemFulfilled(ctx context.Context, q sqlx.ExtContext, itemID uuid.UUID, at time.Time) error
		CreateDispense(ctx context.Context, q sqlx.ExtContext, dispense *model.MedDispense) error
	}

	LabTestRepository interface {
		Create(ctx context.Context, test *model.LabTest) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
		// GetForUpdate locks the row so the completed-transition decision and
		// the accrual happen against a stable prior state.
		GetForUpdate(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*model.LabTest, error)
		Update(ctx context.Context, q sqlx.ExtContext, test *model.LabTest) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error)
	}

	BillingRepository interface {
		// GetOpenBillForUpdate returns the patient's unpaid bill locked for the
		// transaction, or (nil, nil) when none exists.
		GetOpenBillForUpdate(ctx context.Context, q sqlx.ExtContext, patientID uuid.UUID) (*model.Bill, error)
		CreateBill(ctx context.Context, q sqlx.ExtContext, bill *model.Bill) error
		AddItem(ctx context.Context, q sqlx.ExtContext, item *model.BillItem) error
		AddToTotal(ctx context.Context, q sqlx.ExtContext, billID uuid.UUID, amount float64) error
		Get(ctx context.Context, id uuid.UUID) (*model.Bill, error)
		GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.Bill, error)
		ListItems(ctx context.Context, billID uuid.UUID) ([]*model.BillItem, error)
		List(ctx context.Context) ([]*model.BillWithPatient, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error)
		MarkPaid(ctx context.Context, billID uuid.UUID, at time.Time) error
	}

	RoomRepository interface {
		Create(ctx context.Context, room *model.Room) error
		Get(ctx context.Context, id uuid.UUID) (*model.Room, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Room, error)
		Assign(ctx context.Context, assignment *model.RoomAssignment) error
		EndAssignment(ctx context.Context, assignmentID uuid.UUID, at time.Time) error
		ListAssignments(ctx context.Context, patientID uuid.UUID) ([]*model.RoomAssignment, error)
	}

	StatsRepository interface {
		DashboardCounts(ctx context.Context) (*model.DashboardStats, error)
	}

	// TokenRepository tracks revoked session tokens (logout).
	TokenRepository interface {
		Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}
)
