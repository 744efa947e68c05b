package billing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/hms-api/internal/model"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type fakeBillingRepo struct {
	bills map[uuid.UUID]*model.Bill
	items []*model.BillItem

	createCalls int
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (f *fakeBillingRepo) openBill(patientID uuid.UUID) *model.Bill {
	for _, b := range f.bills {
		if b.PatientID == patientID && !b.Paid {
			return b
		}
	}
	return nil
}

func (f *fakeBillingRepo) GetOpenBillForUpdate(ctx context.Context, q sqlx.ExtContext, patientID uuid.UUID) (*model.Bill, error) {
	return f.openBill(patientID), nil
}

func (f *fakeBillingRepo) CreateBill(ctx context.Context, q sqlx.ExtContext, bill *model.Bill) error {
	f.createCalls++
	f.bills[bill.ID] = bill
	return nil
}

func (f *fakeBillingRepo) AddItem(ctx context.Context, q sqlx.ExtContext, item *model.BillItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeBillingRepo) AddToTotal(ctx context.Context, q sqlx.ExtContext, billID uuid.UUID, amount float64) error {
	f.bills[billID].TotalAmount += amount
	return nil
}

func (f *fakeBillingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := f.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeBillingRepo) GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.Bill, error) {
	if b := f.openBill(patientID); b != nil {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBillingRepo) ListItems(ctx context.Context, billID uuid.UUID) ([]*model.BillItem, error) {
	var items []*model.BillItem
	for _, it := range f.items {
		if it.BillID == billID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (f *fakeBillingRepo) List(ctx context.Context) ([]*model.BillWithPatient, error) {
	var out []*model.BillWithPatient
	for _, b := range f.bills {
		out = append(out, &model.BillWithPatient{Bill: *b})
	}
	return out, nil
}

func (f *fakeBillingRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	var out []*model.Bill
	for _, b := range f.bills {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) MarkPaid(ctx context.Context, billID uuid.UUID, at time.Time) error {
	b, ok := f.bills[billID]
	if !ok || b.Paid {
		return sql.ErrNoRows
	}
	b.Paid = true
	b.PaidAt = &at
	return nil
}

func TestAccrueOpensOneBillPerPatient(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)
	patientID := uuid.New()

	charges := []model.Charge{
		{PatientID: patientID, Source: model.BillItemSourceTreatment, SourceRef: uuid.New(), Description: "Stitches", Amount: 50},
		{PatientID: patientID, Source: model.BillItemSourceMedication, SourceRef: uuid.New(), Description: "Ibuprofen", Amount: 12.5},
		{PatientID: patientID, Source: model.BillItemSourceLabTest, SourceRef: uuid.New(), Description: "CBC", Amount: 30},
	}
	for _, ch := range charges {
		require.NoError(t, svc.Accrue(context.Background(), nil, ch))
	}

	assert.Equal(t, 1, repo.createCalls, "all charges should land on one bill")
	bill := repo.openBill(patientID)
	require.NotNil(t, bill)
	assert.Equal(t, 92.5, bill.TotalAmount)
	assert.Len(t, repo.items, 3)
	for i, it := range repo.items {
		assert.Equal(t, bill.ID, it.BillID)
		assert.Equal(t, charges[i].Source, it.SourceType)
		assert.Equal(t, charges[i].Amount, it.Amount)
	}
}

func TestAccrueOpensNewBillAfterSettlement(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)
	patientID := uuid.New()

	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{
		PatientID: patientID, Source: model.BillItemSourceTreatment, SourceRef: uuid.New(), Amount: 100,
	}))
	first := repo.openBill(patientID)
	require.NoError(t, svc.SettleBill(context.Background(), first.ID))
	assert.True(t, repo.bills[first.ID].Paid)

	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{
		PatientID: patientID, Source: model.BillItemSourceTreatment, SourceRef: uuid.New(), Amount: 25,
	}))

	second := repo.openBill(patientID)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 25.0, second.TotalAmount)
	assert.Equal(t, 100.0, repo.bills[first.ID].TotalAmount, "settled bill stays untouched")
}

func TestAccrueZeroAmountStillRecordsItem(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)
	patientID := uuid.New()

	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{
		PatientID: patientID, Source: model.BillItemSourceLabTest, SourceRef: uuid.New(), Description: "X-Ray",
	}))

	bill := repo.openBill(patientID)
	require.NotNil(t, bill)
	assert.Equal(t, 0.0, bill.TotalAmount)
	assert.Len(t, repo.items, 1)
}

func TestAccrueSeparatePatientsSeparateBills(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)

	p1, p2 := uuid.New(), uuid.New()
	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{PatientID: p1, Source: model.BillItemSourceTreatment, SourceRef: uuid.New(), Amount: 10}))
	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{PatientID: p2, Source: model.BillItemSourceTreatment, SourceRef: uuid.New(), Amount: 20}))

	assert.Equal(t, 2, repo.createCalls)
	assert.Equal(t, 10.0, repo.openBill(p1).TotalAmount)
	assert.Equal(t, 20.0, repo.openBill(p2).TotalAmount)
}

func TestSettleBillNotFound(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)

	err := svc.SettleBill(context.Background(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestGetBillWithItems(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, nil)
	patientID := uuid.New()

	require.NoError(t, svc.Accrue(context.Background(), nil, model.Charge{
		PatientID: patientID, Source: model.BillItemSourceMedication, SourceRef: uuid.New(), Description: "Amoxicillin", Amount: 8,
	}))

	bill := repo.openBill(patientID)
	got, err := svc.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, got.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Amoxicillin", got.Items[0].Description)
}
