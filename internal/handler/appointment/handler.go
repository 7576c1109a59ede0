package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/handler"
	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/schedule"
	appointmentService "github.com/randevuhq/randevu-api/internal/service/appointment"
	"github.com/randevuhq/randevu-api/pkg/metrics"
)

// Rejection reason codes returned to the UI.
const (
	reasonConflict = "conflict"
	reasonPastDate = "past_date"
)

type Handler struct {
	service *appointmentService.Service
	metrics *metrics.Metrics
}

func NewHandler(service *appointmentService.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/calendar", h.Calendar)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.POST("/:id/reschedule", h.Reschedule)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format, expected RFC 3339"))
		return
	}

	apt := &model.Appointment{
		BusinessID: uuid.MustParse(req.BusinessID),
		ServiceID:  uuid.MustParse(req.ServiceID),
		StaffID:    uuid.MustParse(req.StaffID),
		CustomerID: uuid.MustParse(req.CustomerID),
		Date:       date,
		Notes:      req.Notes,
	}

	if err := h.service.CreateAppointment(c.Request.Context(), apt); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.AppointmentsCreated.Inc()
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if id := c.Query("business_id"); id != "" {
		businessID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
			return
		}
		filters.BusinessID = businessID
	}
	if id := c.Query("staff_id"); id != "" {
		staffID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
			return
		}
		filters.StaffID = staffID
	}
	if id := c.Query("customer_id"); id != "" {
		customerID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid customer ID"))
			return
		}
		filters.CustomerID = customerID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}
	if date := c.Query("start_date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
		filters.StartDate = parsed
	}
	if date := c.Query("end_date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return
		}
		filters.EndDate = parsed
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

// Reschedule handles a drop onto a grid cell.
func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), id, req.Day, req.Time)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReschedulesCommitted.Inc()
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), id); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// Calendar returns the weekly grid containing week_of (default: today).
func (h *Handler) Calendar(c *gin.Context) {
	ref := time.Now()
	if weekOf := c.Query("week_of"); weekOf != "" {
		parsed, err := time.ParseInLocation("2006-01-02", weekOf, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid week_of date"))
			return
		}
		ref = parsed
	}

	view, err := h.service.Calendar(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

// respondScheduleError maps the coordinator's typed rejections to distinct
// statuses and reason codes; anything else is a generic save failure.
func (h *Handler) respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrSlotConflict):
		if h.metrics != nil {
			h.metrics.ReschedulesRejected.WithLabelValues(reasonConflict).Inc()
		}
		c.JSON(http.StatusConflict, handler.NewRejectionResponse(
			"Bu saatte aynı personel için başka bir randevu var", reasonConflict))
	case errors.Is(err, schedule.ErrPastDate):
		if h.metrics != nil {
			h.metrics.ReschedulesRejected.WithLabelValues(reasonPastDate).Inc()
		}
		c.JSON(http.StatusUnprocessableEntity, handler.NewRejectionResponse(
			"Geçmiş tarihe randevu taşınamaz", reasonPastDate))
	case errors.Is(err, schedule.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
	default:
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
	}
}
