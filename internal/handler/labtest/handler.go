package labtest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/handler"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/service/labtest"
)

type Handler struct {
	service labtest.Service
}

func NewHandler(service labtest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	tests := r.Group("/lab-tests")
	{
		tests.POST("", h.OrderLabTest)
		tests.GET("", h.ListForDoctor)
		tests.GET("/:id", h.GetLabTest)
		tests.PUT("/:id", h.UpdateLabTest)
	}
}

func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	r.GET("/lab-tests", h.ListForPatient)
}

func (h *Handler) OrderLabTest(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)

	var req model.OrderLabTestRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	ordered, err := h.service.OrderLabTest(c.Request.Context(), authCtx.SubjectID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(ordered))
}

func (h *Handler) GetLabTest(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetLabTest(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateLabTest(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateLabTestRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateLabTest(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	tests, err := h.service.ListForDoctor(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tests))
}

func (h *Handler) ListForPatient(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	tests, err := h.service.ListForPatient(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tests))
}
