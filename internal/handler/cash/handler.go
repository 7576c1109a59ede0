package cash

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/handler"
	"github.com/randevuhq/randevu-api/internal/model"
	cashService "github.com/randevuhq/randevu-api/internal/service/cash"
)

type Handler struct {
	service *cashService.Service
}

func NewHandler(service *cashService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cash := r.Group("/cash")
	{
		cash.POST("/transactions", h.CreateTransaction)
		cash.GET("/transactions", h.ListTransactions)
		cash.GET("/transactions/:id", h.GetTransaction)
		cash.DELETE("/transactions/:id", h.DeleteTransaction)
		cash.GET("/report", h.Report)
	}
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req model.CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tx, err := h.service.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(tx))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid transaction ID"))
		return
	}

	tx, err := h.service.GetTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("transaction not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tx))
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid transaction ID"))
		return
	}

	if err := h.service.DeleteTransaction(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListTransactions(c *gin.Context) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	transactions, err := h.service.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(transactions))
}

// Report returns income/expense totals for the filtered period.
func (h *Handler) Report(c *gin.Context) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	summary, err := h.service.Report(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) parseFilters(c *gin.Context) (*model.CashFilters, bool) {
	filters := &model.CashFilters{}

	if id := c.Query("business_id"); id != "" {
		businessID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
			return nil, false
		}
		filters.BusinessID = businessID
	}
	if t := c.Query("type"); t != "" {
		filters.Type = model.CashType(t)
	}
	if date := c.Query("start_date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return nil, false
		}
		filters.StartDate = parsed
	}
	if date := c.Query("end_date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return nil, false
		}
		filters.EndDate = parsed
	}

	return filters, true
}
