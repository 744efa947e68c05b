package treatment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/handler"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/service/treatment"
)

type Handler struct {
	service treatment.Service
}

func NewHandler(service treatment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.POST("", h.CreateTreatment)
		treatments.GET("", h.ListForDoctor)
	}
}

func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	r.GET("/treatments", h.ListForPatient)
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)

	var req model.CreateTreatmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateTreatment(c.Request.Context(), authCtx.SubjectID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	treatments, err := h.service.ListForDoctor(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatments))
}

func (h *Handler) ListForPatient(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	treatments, err := h.service.ListForPatient(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatments))
}
