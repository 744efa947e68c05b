package router_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/meditrack/hms-api/internal/config"
	"github.com/meditrack/hms-api/internal/email"
	appointmentHandler "github.com/meditrack/hms-api/internal/handler/appointment"
	authHandler "github.com/meditrack/hms-api/internal/handler/auth"
	billingHandler "github.com/meditrack/hms-api/internal/handler/billing"
	doctorHandler "github.com/meditrack/hms-api/internal/handler/doctor"
	healthHandler "github.com/meditrack/hms-api/internal/handler/health"
	labtestHandler "github.com/meditrack/hms-api/internal/handler/labtest"
	patientHandler "github.com/meditrack/hms-api/internal/handler/patient"
	prescriptionHandler "github.com/meditrack/hms-api/internal/handler/prescription"
	roomHandler "github.com/meditrack/hms-api/internal/handler/room"
	treatmentHandler "github.com/meditrack/hms-api/internal/handler/treatment"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/router"
	appointmentSvc "github.com/meditrack/hms-api/internal/service/appointment"
	authSvc "github.com/meditrack/hms-api/internal/service/auth"
	billingSvc "github.com/meditrack/hms-api/internal/service/billing"
	doctorSvc "github.com/meditrack/hms-api/internal/service/doctor"
	labtestSvc "github.com/meditrack/hms-api/internal/service/labtest"
	patientSvc "github.com/meditrack/hms-api/internal/service/patient"
	prescriptionSvc "github.com/meditrack/hms-api/internal/service/prescription"
	roomSvc "github.com/meditrack/hms-api/internal/service/room"
	statsSvc "github.com/meditrack/hms-api/internal/service/stats"
	treatmentSvc "github.com/meditrack/hms-api/internal/service/treatment"
	pkgauth "github.com/meditrack/hms-api/pkg/auth"
	"github.com/meditrack/hms-api/pkg/logger"
)

// memStore is a single in-memory backing store shared by the per-entity
// fakes so cross-entity flows (booking, accrual, settlement) observe each
// other's writes.
type memStore struct {
	patients     map[uuid.UUID]*model.Patient
	doctors      map[uuid.UUID]*model.Doctor
	appointments map[uuid.UUID]*model.Appointment
	treatments   map[uuid.UUID]*model.Treatment
	bills        map[uuid.UUID]*model.Bill
	billItems    map[uuid.UUID][]*model.BillItem
	labTests     map[uuid.UUID]*model.LabTest
}

func newMemStore() *memStore {
	return &memStore{
		patients:     make(map[uuid.UUID]*model.Patient),
		doctors:      make(map[uuid.UUID]*model.Doctor),
		appointments: make(map[uuid.UUID]*model.Appointment),
		treatments:   make(map[uuid.UUID]*model.Treatment),
		bills:        make(map[uuid.UUID]*model.Bill),
		billItems:    make(map[uuid.UUID][]*model.BillItem),
		labTests:     make(map[uuid.UUID]*model.LabTest),
	}
}

type memTxRunner struct{}

func (memTxRunner) RunInTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	return fn(nil)
}

type memPatientRepo struct{ s *memStore }

func (r *memPatientRepo) Create(ctx context.Context, p *model.Patient) error {
	r.s.patients[p.ID] = p
	return nil
}
func (r *memPatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.s.patients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}
func (r *memPatientRepo) Update(ctx context.Context, p *model.Patient) error {
	r.s.patients[p.ID] = p
	return nil
}
func (r *memPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.patients, id)
	return nil
}
func (r *memPatientRepo) List(ctx context.Context) ([]*model.PatientWithDoctor, error) {
	out := make([]*model.PatientWithDoctor, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		out = append(out, &model.PatientWithDoctor{Patient: *p})
	}
	return out, nil
}

type memDoctorRepo struct{ s *memStore }

func (r *memDoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	r.s.doctors[d.ID] = d
	return nil
}
func (r *memDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}
func (r *memDoctorRepo) GetByContact(ctx context.Context, contact string) (*model.Doctor, error) {
	for _, d := range r.s.doctors {
		if d.Contact == contact {
			return d, nil
		}
	}
	return nil, sql.ErrNoRows
}
func (r *memDoctorRepo) Update(ctx context.Context, d *model.Doctor) error {
	r.s.doctors[d.ID] = d
	return nil
}
func (r *memDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.doctors, id)
	return nil
}
func (r *memDoctorRepo) List(ctx context.Context) ([]*model.Doctor, error) {
	out := make([]*model.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, d)
	}
	return out, nil
}

type memAppointmentRepo struct{ s *memStore }

func (r *memAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	r.s.appointments[a.ID] = a
	return nil
}
func (r *memAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}
func (r *memAppointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	if _, ok := r.s.appointments[a.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *a
	r.s.appointments[a.ID] = &copied
	return nil
}
func (r *memAppointmentRepo) ListPending(ctx context.Context) ([]*model.AppointmentWithNames, error) {
	var out []*model.AppointmentWithNames
	for _, a := range r.s.appointments {
		if a.Status == model.AppointmentStatusBooked {
			out = append(out, &model.AppointmentWithNames{Appointment: *a})
		}
	}
	return out, nil
}
func (r *memAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	var out []*model.AppointmentWithNames
	for _, a := range r.s.appointments {
		if a.PatientID == patientID {
			out = append(out, &model.AppointmentWithNames{Appointment: *a})
		}
	}
	return out, nil
}
func (r *memAppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentWithNames, error) {
	var out []*model.AppointmentWithNames
	for _, a := range r.s.appointments {
		if a.DoctorID != nil && *a.DoctorID == doctorID {
			out = append(out, &model.AppointmentWithNames{Appointment: *a})
		}
	}
	return out, nil
}

type memTreatmentRepo struct{ s *memStore }

func (r *memTreatmentRepo) Create(ctx context.Context, q sqlx.ExtContext, t *model.Treatment) error {
	r.s.treatments[t.ID] = t
	return nil
}
func (r *memTreatmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Treatment, error) {
	t, ok := r.s.treatments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}
func (r *memTreatmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Treatment, error) {
	var out []*model.Treatment
	for _, t := range r.s.treatments {
		if t.DoctorID == doctorID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTreatmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Treatment, error) {
	var out []*model.Treatment
	for _, t := range r.s.treatments {
		if t.PatientID == patientID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memBillingRepo struct{ s *memStore }

func (r *memBillingRepo) GetOpenBillForUpdate(ctx context.Context, q sqlx.ExtContext, patientID uuid.UUID) (*model.Bill, error) {
	for _, b := range r.s.bills {
		if b.PatientID == patientID && !b.Paid {
			return b, nil
		}
	}
	return nil, nil
}
func (r *memBillingRepo) CreateBill(ctx context.Context, q sqlx.ExtContext, bill *model.Bill) error {
	r.s.bills[bill.ID] = bill
	return nil
}
func (r *memBillingRepo) AddItem(ctx context.Context, q sqlx.ExtContext, item *model.BillItem) error {
	r.s.billItems[item.BillID] = append(r.s.billItems[item.BillID], item)
	return nil
}
func (r *memBillingRepo) AddToTotal(ctx context.Context, q sqlx.ExtContext, billID uuid.UUID, amount float64) error {
	bill, ok := r.s.bills[billID]
	if !ok {
		return sql.ErrNoRows
	}
	bill.TotalAmount += amount
	return nil
}
func (r *memBillingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := r.s.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return b, nil
}
func (r *memBillingRepo) GetOpenBill(ctx context.Context, patientID uuid.UUID) (*model.Bill, error) {
	for _, b := range r.s.bills {
		if b.PatientID == patientID && !b.Paid {
			return b, nil
		}
	}
	return nil, sql.ErrNoRows
}
func (r *memBillingRepo) ListItems(ctx context.Context, billID uuid.UUID) ([]*model.BillItem, error) {
	return r.s.billItems[billID], nil
}
func (r *memBillingRepo) List(ctx context.Context) ([]*model.BillWithPatient, error) {
	out := make([]*model.BillWithPatient, 0, len(r.s.bills))
	for _, b := range r.s.bills {
		out = append(out, &model.BillWithPatient{Bill: *b})
	}
	return out, nil
}
func (r *memBillingRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	var out []*model.Bill
	for _, b := range r.s.bills {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBillingRepo) MarkPaid(ctx context.Context, billID uuid.UUID, at time.Time) error {
	bill, ok := r.s.bills[billID]
	if !ok || bill.Paid {
		return sql.ErrNoRows
	}
	bill.Paid = true
	bill.PaidAt = &at
	return nil
}

type memLabTestRepo struct{ s *memStore }

func (r *memLabTestRepo) Create(ctx context.Context, t *model.LabTest) error {
	r.s.labTests[t.ID] = t
	return nil
}
func (r *memLabTestRepo) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	t, ok := r.s.labTests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}
func (r *memLabTestRepo) GetForUpdate(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*model.LabTest, error) {
	return r.Get(ctx, id)
}
func (r *memLabTestRepo) Update(ctx context.Context, q sqlx.ExtContext, t *model.LabTest) error {
	r.s.labTests[t.ID] = t
	return nil
}
func (r *memLabTestRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.LabTest, error) {
	return nil, nil
}
func (r *memLabTestRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.LabTest, error) {
	return nil, nil
}

type stubMedicationRepo struct{}

func (stubMedicationRepo) GetOrCreate(ctx context.Context, q sqlx.ExtContext, name string, price float64) (*model.Medication, error) {
	return &model.Medication{Base: model.Base{ID: uuid.New()}, Name: name, Price: price}, nil
}
func (stubMedicationRepo) List(ctx context.Context) ([]*model.Medication, error) { return nil, nil }

type stubPrescriptionRepo struct{}

func (stubPrescriptionRepo) Create(ctx context.Context, q sqlx.ExtContext, p *model.Prescription) error {
	return nil
}
func (stubPrescriptionRepo) CreateItem(ctx context.Context, q sqlx.ExtContext, item *model.PrescriptionItem) error {
	return nil
}
func (stubPrescriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	return nil, sql.ErrNoRows
}
func (stubPrescriptionRepo) GetItem(ctx context.Context, id uuid.UUID) (*model.PrescriptionItem, error) {
	return nil, sql.ErrNoRows
}
func (stubPrescriptionRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	return nil, nil
}
func (stubPrescriptionRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Prescription, error) {
	return nil, nil
}
func (stubPrescriptionRepo) ListItems(ctx context.Context, prescriptionID uuid.UUID) ([]*model.PrescriptionItem, error) {
	return nil, nil
}
func (stubPrescriptionRepo) MarkItemFulfilled(ctx context.Context, q sqlx.ExtContext, itemID uuid.UUID, at time.Time) error {
	return nil
}
func (stubPrescriptionRepo) CreateDispense(ctx context.Context, q sqlx.ExtContext, d *model.MedDispense) error {
	return nil
}

type stubRoomRepo struct{}

func (stubRoomRepo) Create(ctx context.Context, room *model.Room) error { return nil }
func (stubRoomRepo) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return nil, sql.ErrNoRows
}
func (stubRoomRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (stubRoomRepo) List(ctx context.Context) ([]*model.Room, error)    { return nil, nil }
func (stubRoomRepo) Assign(ctx context.Context, a *model.RoomAssignment) error {
	return nil
}
func (stubRoomRepo) EndAssignment(ctx context.Context, assignmentID uuid.UUID, at time.Time) error {
	return nil
}
func (stubRoomRepo) ListAssignments(ctx context.Context, patientID uuid.UUID) ([]*model.RoomAssignment, error) {
	return nil, nil
}

type stubStatsRepo struct{}

func (stubStatsRepo) DashboardCounts(ctx context.Context) (*model.DashboardStats, error) {
	return &model.DashboardStats{}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := newMemStore()
	tx := memTxRunner{}
	patients := &memPatientRepo{s: store}
	doctors := &memDoctorRepo{s: store}
	appointments := &memAppointmentRepo{s: store}
	treatments := &memTreatmentRepo{s: store}
	billing := &memBillingRepo{s: store}
	labTests := &memLabTestRepo{s: store}

	log := logger.NewLogger(nil)
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	mailer := email.NewService(config.SMTPConfig{})

	billingService := billingSvc.NewService(billing, nil)
	services := router.Handlers{
		Health: healthHandler.NewHandler(nil),
		Auth: authHandler.NewHandler(authSvc.NewService(
			config.AdminConfig{Username: "admin", Password: "admin123"},
			doctors, patients, nil, jwtSvc,
		)),
		Patient:     patientHandler.NewHandler(patientSvc.NewService(patients, doctors)),
		Doctor:      doctorHandler.NewHandler(doctorSvc.NewService(doctors)),
		Appointment: appointmentHandler.NewHandler(appointmentSvc.NewService(appointments, patients, doctors, mailer, log)),
		Treatment:   treatmentHandler.NewHandler(treatmentSvc.NewService(treatments, tx, billingService)),
		Prescription: prescriptionHandler.NewHandler(
			prescriptionSvc.NewService(stubPrescriptionRepo{}, stubMedicationRepo{}, tx, billingService),
		),
		LabTest: labtestHandler.NewHandler(labtestSvc.NewService(labTests, tx, billingService)),
		Billing: billingHandler.NewHandler(billingService, statsSvc.NewService(stubStatsRepo{})),
		Room:    roomHandler.NewHandler(roomSvc.NewService(stubRoomRepo{}, patients)),
	}

	authMw := middleware.NewAuthMiddleware(jwtSvc, nil)
	r := router.NewRouter(authMw, services, nil, router.Config{
		RateLimit:      rate.Limit(1000),
		RateBurst:      1000,
		RequestTimeout: 5 * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NotEmpty(t, env.Data, "response has no data payload")
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func login(t *testing.T, srv *httptest.Server, path string, body any) string {
	t.Helper()
	status, env := do(t, srv, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusOK, status)
	var resp model.TokenResponse
	decodeData(t, env, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// TestPortalFlow walks the whole lifecycle over HTTP: a patient registers
// and books, an admin confirms with a doctor, the doctor records a
// treatment, the charge lands on the patient's open bill, and settlement
// closes it.
func TestPortalFlow(t *testing.T) {
	srv := newTestServer(t)

	adminToken := login(t, srv, "/api/v1/auth/admin/login", map[string]string{
		"username": "admin", "password": "admin123",
	})

	// Patient self-registration is public.
	status, env := do(t, srv, http.MethodPost, "/api/v1/patients/register", "", map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	var patient model.Patient
	decodeData(t, env, &patient)

	patientToken := login(t, srv, "/api/v1/auth/patient/login", map[string]string{
		"patient_id": patient.ID.String(),
	})

	status, env = do(t, srv, http.MethodPost, "/api/v1/admin/doctors", adminToken, map[string]string{
		"first_name": "Gregory", "last_name": "House",
		"contact": "house@example.com", "password": "lupus",
	})
	require.Equal(t, http.StatusCreated, status)
	var doctor model.Doctor
	decodeData(t, env, &doctor)

	doctorToken := login(t, srv, "/api/v1/auth/doctor/login", map[string]string{
		"contact": "house@example.com", "password": "lupus",
	})

	// Book: appointment starts booked with no doctor attached.
	status, env = do(t, srv, http.MethodPost, "/api/v1/patient/appointments", patientToken, map[string]string{
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"notes":        "persistent cough",
	})
	require.Equal(t, http.StatusCreated, status)
	var booked model.Appointment
	decodeData(t, env, &booked)
	assert.Equal(t, model.AppointmentStatusBooked, booked.Status)
	assert.Nil(t, booked.DoctorID)

	// The booking shows up on the admin's pending queue.
	status, env = do(t, srv, http.MethodGet, "/api/v1/admin/appointments/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var pending []model.AppointmentWithNames
	decodeData(t, env, &pending)
	require.Len(t, pending, 1)

	// Confirm without a doctor is rejected.
	status, _ = do(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/appointments/%s/confirm", booked.ID), adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/appointments/%s/confirm", booked.ID), adminToken, map[string]string{
			"doctor_id": doctor.ID.String(),
		})
	require.Equal(t, http.StatusOK, status)
	var confirmed model.Appointment
	decodeData(t, env, &confirmed)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.DoctorID)
	assert.Equal(t, doctor.ID, *confirmed.DoctorID)

	// No charges yet, so the patient has no open bill.
	status, _ = do(t, srv, http.MethodGet, "/api/v1/patient/bills/open", patientToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// The doctor records a treatment; its cost accrues to a fresh bill.
	status, env = do(t, srv, http.MethodPost, "/api/v1/doctor/treatments", doctorToken, map[string]any{
		"patient_id":  patient.ID.String(),
		"description": "Chest X-ray review",
		"cost":        50.0,
	})
	require.Equal(t, http.StatusCreated, status)
	var treatment model.Treatment
	decodeData(t, env, &treatment)
	assert.Equal(t, doctor.ID, treatment.DoctorID)

	status, env = do(t, srv, http.MethodGet, "/api/v1/patient/bills/open", patientToken, nil)
	require.Equal(t, http.StatusOK, status)
	var open model.BillWithItems
	decodeData(t, env, &open)
	assert.Equal(t, 50.0, open.TotalAmount)
	assert.False(t, open.Paid)
	require.Len(t, open.Items, 1)
	assert.Equal(t, model.BillItemSourceTreatment, open.Items[0].SourceType)
	assert.Equal(t, treatment.ID, open.Items[0].SourceRef)

	// The assigned doctor completes the visit.
	status, env = do(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/doctor/appointments/%s/complete", booked.ID), doctorToken, nil)
	require.Equal(t, http.StatusOK, status)
	var completed model.Appointment
	decodeData(t, env, &completed)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	// Settlement closes the bill; the patient has no open bill again.
	status, _ = do(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/bills/%s/settle", open.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/patient/bills/open", patientToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// TestRoleIsolation verifies each portal rejects tokens from the other
// roles and unauthenticated requests outright.
func TestRoleIsolation(t *testing.T) {
	srv := newTestServer(t)

	adminToken := login(t, srv, "/api/v1/auth/admin/login", map[string]string{
		"username": "admin", "password": "admin123",
	})

	status, _ := do(t, srv, http.MethodGet, "/api/v1/admin/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/doctor/appointments", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/patient/bills", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/admin/patients", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestHealthAndBadLogin(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/api/v1/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
