package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/booking"
	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/middlewares"
	"github.com/Leganyst/slot-booking/internal/service"
)

type BookingHandler struct {
	engine *booking.Engine
	logger *zap.Logger
}

func NewBookingHandler(engine *booking.Engine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{engine: engine, logger: logger}
}

// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		BookingDateTime string `json:"bookingDateTime" binding:"required"`
		Notes           string `json:"notes" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	loc := h.engine.Schedule().Location
	at, err := calendar.ParseDateTime(in.BookingDateTime, loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	p, _ := middlewares.Principal(c)
	b, err := h.engine.CreateBooking(c.Request.Context(), p, at, in.Notes)
	if err != nil {
		writeError(c, h.logger, "create booking", err)
		return
	}
	c.JSON(http.StatusCreated, service.MapBooking(b, loc))
}

// GET /api/bookings/my-bookings?page=&page_size=
func (h *BookingHandler) MyBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))

	p, _ := middlewares.Principal(c)
	res, err := h.engine.UserBookings(c.Request.Context(), p.UserID, page, size)
	if err != nil {
		writeError(c, h.logger, "list my bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": service.MapBookings(res.Items, h.engine.Schedule().Location),
		"page":     res.Page,
		"pageSize": res.PageSize,
		"total":    res.Total,
		"hasNext":  res.HasNext,
	})
}

// DELETE /api/bookings/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	p, _ := middlewares.Principal(c)
	if _, err := h.engine.CancelBooking(c.Request.Context(), c.Param("id"), p.UserID); err != nil {
		writeError(c, h.logger, "cancel booking", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/bookings/available-slots?date=YYYY-MM-DD
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	loc := h.engine.Schedule().Location
	date, err := calendar.ParseDate(c.Query("date"), loc)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	slots, err := h.engine.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		writeError(c, h.logger, "list available slots", err)
		return
	}
	c.JSON(http.StatusOK, service.MapSlots(slots, loc))
}
