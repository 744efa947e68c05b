package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/handler"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/service/appointment"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts confirmation and the generic mutator. The
// pending listing is soonest-first.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/pending", h.ListPending)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/confirm", h.ConfirmAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}

// RegisterDoctorRoutes mounts the doctor's schedule and completion.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListForDoctor)
		appointments.POST("/:id/complete", h.CompleteAppointment)
	}
}

// RegisterPatientRoutes mounts booking, the patient's own listing
// (most recent first) and cancellation of their own appointments.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListForPatient)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)

	var req model.BookAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	booked, err := h.service.Book(c.Request.Context(), authCtx.SubjectID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(booked))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ConfirmAppointment(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ConfirmAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	confirmed, err := h.service.Confirm(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(confirmed))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id, middleware.GetAuthContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cancelled))
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	authCtx := middleware.GetAuthContext(c)
	completed, err := h.service.Complete(c.Request.Context(), id, authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(completed))
}

func (h *Handler) ListPending(c *gin.Context) {
	appointments, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) ListForPatient(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	appointments, err := h.service.ListForPatient(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	appointments, err := h.service.ListForDoctor(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}
