package labtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/hms-api/internal/model"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return fn(nil)
}

type fakeLabTestRepo struct {
	tests map[uuid.UUID]*model.LabTest
}

func newFakeLabTestRepo() *fakeLabTestRepo {
	return &fakeLabTestRepo{tests: make(map[uuid.UUID]*model.LabTest)}
}

func (f *fakeLabTestRepo) Create(ctx context.Context, test *model.LabTest) error {
	f.tests[test.ID] = test
	return nil
}

func (f *fakeLabTestRepo) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeLabTestRepo) GetForUpdate(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*model.LabTest, error) {
	return f.Get(ctx, id)
}

func (f *fakeLabTestRepo) Update(ctx context.Context, q sqlx.ExtContext, test *model.LabTest) error {
	if _, ok := f.tests[test.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *test
	f.tests[test.ID] = &cp
	return nil
}

func (f *fakeLabTestRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	return nil, nil
}

func (f *fakeLabTestRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error) {
	return nil, nil
}

type chargeRecorder struct {
	charges []model.Charge
}

func (c *chargeRecorder) Accrue(ctx context.Context, q sqlx.ExtContext, charge model.Charge) error {
	c.charges = append(c.charges, charge)
	return nil
}

func (c *chargeRecorder) GetBill(ctx context.Context, id uuid.UUID) (*model.BillWithItems, error) {
	return nil, nil
}
func (c *chargeRecorder) GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.BillWithItems, error) {
	return nil, nil
}
func (c *chargeRecorder) ListBills(ctx context.Context) ([]*model.BillWithPatient, error) {
	return nil, nil
}
func (c *chargeRecorder) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	return nil, nil
}
func (c *chargeRecorder) SettleBill(ctx context.Context, id uuid.UUID) error { return nil }

func orderTest(t *testing.T, svc Service, cost float64) *model.LabTest {
	t.Helper()
	ordered, err := svc.OrderLabTest(context.Background(), uuid.New(), &model.OrderLabTestRequest{
		PatientID: uuid.New(),
		TestName:  "CBC",
		Cost:      cost,
	})
	require.NoError(t, err)
	return ordered
}

func status(s model.LabTestStatus) *model.LabTestStatus { return &s }

func TestOrderDoesNotCharge(t *testing.T) {
	rec := &chargeRecorder{}
	svc := NewService(newFakeLabTestRepo(), fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 30)
	assert.Equal(t, model.LabTestStatusOrdered, ordered.Status)
	assert.Empty(t, rec.charges)
}

func TestCompletionChargesOnce(t *testing.T) {
	repo := newFakeLabTestRepo()
	rec := &chargeRecorder{}
	svc := NewService(repo, fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 30)

	updated, err := svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, model.LabTestStatusCompleted, updated.Status)

	require.Len(t, rec.charges, 1)
	ch := rec.charges[0]
	assert.Equal(t, ordered.PatientID, ch.PatientID)
	assert.Equal(t, model.BillItemSourceLabTest, ch.Source)
	assert.Equal(t, ordered.ID, ch.SourceRef)
	assert.Equal(t, "CBC", ch.Description)
	assert.Equal(t, 30.0, ch.Amount)
}

func TestRepeatedCompletionNeverRecharges(t *testing.T) {
	repo := newFakeLabTestRepo()
	rec := &chargeRecorder{}
	svc := NewService(repo, fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 30)

	_, err := svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCompleted),
	})
	require.NoError(t, err)

	// saving a result on an already completed test must not re-bill
	result := "WBC within range"
	_, err = svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCompleted),
		Result: &result,
	})
	require.NoError(t, err)

	assert.Len(t, rec.charges, 1)
	assert.Equal(t, result, repo.tests[ordered.ID].Result)
}

func TestNonCompletingUpdatesDoNotCharge(t *testing.T) {
	rec := &chargeRecorder{}
	svc := NewService(newFakeLabTestRepo(), fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 30)

	_, err := svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusInProgress),
	})
	require.NoError(t, err)
	_, err = svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCancelled),
	})
	require.NoError(t, err)

	assert.Empty(t, rec.charges)
}

func TestMissingCostDefaultsToZeroCharge(t *testing.T) {
	rec := &chargeRecorder{}
	svc := NewService(newFakeLabTestRepo(), fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 0)
	_, err := svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCompleted),
	})
	require.NoError(t, err)

	require.Len(t, rec.charges, 1)
	assert.Equal(t, 0.0, rec.charges[0].Amount)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	rec := &chargeRecorder{}
	svc := NewService(newFakeLabTestRepo(), fakeTxRunner{}, rec)

	ordered := orderTest(t, svc, 30)
	bad := model.LabTestStatus("done")
	_, err := svc.UpdateLabTest(context.Background(), ordered.ID, &model.UpdateLabTestRequest{Status: &bad})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestUpdateUnknownTest(t *testing.T) {
	svc := NewService(newFakeLabTestRepo(), fakeTxRunner{}, &chargeRecorder{})

	_, err := svc.UpdateLabTest(context.Background(), uuid.New(), &model.UpdateLabTestRequest{
		Status: status(model.LabTestStatusCompleted),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
