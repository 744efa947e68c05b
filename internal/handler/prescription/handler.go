package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/handler"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/service/prescription"
)

type Handler struct {
	service prescription.Service
}

func NewHandler(service prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("", h.ListForDoctor)
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.POST("/items/:id/dispense", h.DispenseItem)
	}
}

func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	r.GET("/prescriptions", h.ListForPatient)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreatePrescription(c.Request.Context(), authCtx.SubjectID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) DispenseItem(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.DispenseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	authCtx := middleware.GetAuthContext(c)
	if err := h.service.DispenseItem(c.Request.Context(), authCtx.SubjectID, id, &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"dispensed": true}))
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	prescriptions, err := h.service.ListForDoctor(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) ListForPatient(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	prescriptions, err := h.service.ListForPatient(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}
