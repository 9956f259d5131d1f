package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/booking"
	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/service"
)

// AdminHandler: управление доступностью и отчёты. Доступ только для ADMIN.
type AdminHandler struct {
	engine *booking.Engine
	logger *zap.Logger
}

func NewAdminHandler(engine *booking.Engine, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{engine: engine, logger: logger}
}

// POST /api/admin/availability?date=&isAvailable=&notes=
func (h *AdminHandler) SetAvailability(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("date"), h.engine.Schedule().Location)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	open, err := strconv.ParseBool(c.Query("isAvailable"))
	if err != nil {
		badRequest(c, "isAvailable must be true or false")
		return
	}

	rec, err := h.engine.SetAvailability(c.Request.Context(), date, open, c.Query("notes"))
	if err != nil {
		writeError(c, h.logger, "set availability", err)
		return
	}
	c.JSON(http.StatusOK, service.MapAvailability(rec))
}

// GET /api/admin/availability?startDate=&endDate=
func (h *AdminHandler) ListAvailability(c *gin.Context) {
	loc := h.engine.Schedule().Location
	start, err := calendar.ParseDate(c.Query("startDate"), loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	end, err := calendar.ParseDate(c.Query("endDate"), loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	records, err := h.engine.ListAvailability(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.logger, "list availability", err)
		return
	}
	c.JSON(http.StatusOK, service.MapAvailabilities(records))
}

// GET /api/admin/bookings?date=
func (h *AdminHandler) BookingsForDate(c *gin.Context) {
	loc := h.engine.Schedule().Location
	date, err := calendar.ParseDate(c.Query("date"), loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	bookings, err := h.engine.BookingsForDate(c.Request.Context(), date)
	if err != nil {
		writeError(c, h.logger, "list bookings for date", err)
		return
	}
	c.JSON(http.StatusOK, service.MapBookings(bookings, loc))
}

// GET /api/admin/bookings/:id/events
func (h *AdminHandler) BookingEvents(c *gin.Context) {
	events, err := h.engine.BookingEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "list booking events", err)
		return
	}
	c.JSON(http.StatusOK, service.MapEvents(events, h.engine.Schedule().Location))
}
