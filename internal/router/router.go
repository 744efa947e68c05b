package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/meditrack/hms-api/internal/handler/appointment"
	"github.com/meditrack/hms-api/internal/handler/auth"
	"github.com/meditrack/hms-api/internal/handler/billing"
	"github.com/meditrack/hms-api/internal/handler/doctor"
	"github.com/meditrack/hms-api/internal/handler/health"
	"github.com/meditrack/hms-api/internal/handler/patient"
	"github.com/meditrack/hms-api/internal/handler/room"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/pkg/metrics"
)

type Handlers struct {
	Health       *health.Handler
	Auth         *auth.Handler
	Patient      *patient.Handler
	Doctor       *doctor.Handler
	Appointment  *appointment.Handler
	Treatment    TreatmentHandler
	Prescription PrescriptionHandler
	LabTest      LabTestHandler
	Billing      *billing.Handler
	Room         *room.Handler
}

// TreatmentHandler, PrescriptionHandler and LabTestHandler keep the router
// decoupled from concrete handler packages that only register routes.
type TreatmentHandler interface {
	RegisterDoctorRoutes(*gin.RouterGroup)
	RegisterPatientRoutes(*gin.RouterGroup)
}

type PrescriptionHandler interface {
	RegisterDoctorRoutes(*gin.RouterGroup)
	RegisterPatientRoutes(*gin.RouterGroup)
}

type LabTestHandler interface {
	RegisterDoctorRoutes(*gin.RouterGroup)
	RegisterPatientRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit      rate.Limit
	RateBurst      int
	RequestTimeout time.Duration
	CORS           middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *metrics.Metrics
	config   Config
}

func NewRouter(authMw *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:   gin.New(),
		auth:     authMw,
		handlers: handlers,
		metrics:  m,
		config:   config,
	}

	r.engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(config.RequestTimeout),
		middleware.CORS(config.CORS),
	)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	r.engine.Use(limiter.RateLimit())

	return r
}

// Setup mounts public routes and the three role-scoped portals.
func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)
	r.handlers.Patient.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.handlers.Auth.RegisterProtectedRoutes(protected)

	listing := middleware.Cache(middleware.DefaultCacheConfig())

	admin := protected.Group("/admin", r.auth.RequireRole(model.RoleAdmin), listing)
	{
		r.handlers.Patient.RegisterAdminRoutes(admin)
		r.handlers.Doctor.RegisterAdminRoutes(admin)
		r.handlers.Appointment.RegisterAdminRoutes(admin)
		r.handlers.Billing.RegisterAdminRoutes(admin)
		r.handlers.Room.RegisterAdminRoutes(admin)
	}

	doctorGroup := protected.Group("/doctor", r.auth.RequireRole(model.RoleDoctor), listing)
	{
		r.handlers.Appointment.RegisterDoctorRoutes(doctorGroup)
		r.handlers.Treatment.RegisterDoctorRoutes(doctorGroup)
		r.handlers.Prescription.RegisterDoctorRoutes(doctorGroup)
		r.handlers.LabTest.RegisterDoctorRoutes(doctorGroup)
	}

	patientGroup := protected.Group("/patient", r.auth.RequireRole(model.RolePatient), listing)
	{
		r.handlers.Patient.RegisterPatientRoutes(patientGroup)
		r.handlers.Appointment.RegisterPatientRoutes(patientGroup)
		r.handlers.Treatment.RegisterPatientRoutes(patientGroup)
		r.handlers.Prescription.RegisterPatientRoutes(patientGroup)
		r.handlers.LabTest.RegisterPatientRoutes(patientGroup)
		r.handlers.Billing.RegisterPatientRoutes(patientGroup)
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
