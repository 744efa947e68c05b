package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meditrack/hms-api/internal/handler"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/service/billing"
	"github.com/meditrack/hms-api/internal/service/stats"
)

type Handler struct {
	service billing.Service
	stats   stats.Service
}

func NewHandler(service billing.Service, stats stats.Service) *Handler {
	return &Handler{service: service, stats: stats}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	bills := r.Group("/bills")
	{
		bills.GET("", h.ListBills)
		bills.GET("/:id", h.GetBill)
		bills.POST("/:id/settle", h.SettleBill)
	}
	r.GET("/dashboard", h.Dashboard)
}

// RegisterPatientRoutes mounts the patient's own billing history and
// current open bill.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	bills := r.Group("/bills")
	{
		bills.GET("", h.ListOwnBills)
		bills.GET("/open", h.GetOwnOpenBill)
	}
}

func (h *Handler) ListBills(c *gin.Context) {
	bills, err := h.service.ListBills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bills))
}

func (h *Handler) GetBill(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill))
}

func (h *Handler) SettleBill(c *gin.Context) {
	id, ok := handler.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.SettleBill(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"settled": true}))
}

func (h *Handler) ListOwnBills(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	bills, err := h.service.ListForPatient(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bills))
}

func (h *Handler) GetOwnOpenBill(c *gin.Context) {
	authCtx := middleware.GetAuthContext(c)
	bill, err := h.service.GetOpenBill(c.Request.Context(), authCtx.SubjectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bill))
}

func (h *Handler) Dashboard(c *gin.Context) {
	counts, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(counts))
}
