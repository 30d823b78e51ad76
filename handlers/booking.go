package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the parent-facing booking lifecycle.
type BookingHandler struct {
	BookingService booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	b, err := h.BookingService.CreateBooking(c.Request.Context(), parentID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler handles GET /api/bookings. Overdue confirmed
// bookings are swept into completed before the list is read.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := h.BookingService.ListParentBookings(c.Request.Context(), parentID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	b, err := h.BookingService.CancelBooking(c.Request.Context(), parentID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
}

// DeleteBookingHandler handles DELETE /api/bookings/:id/permanent.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.BookingService.DeleteBooking(parentID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
