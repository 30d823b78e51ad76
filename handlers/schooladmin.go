package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/services/report"
	"tourbook/services/school"
	"tourbook/services/tour"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// SchoolAdminHandler exposes the school-admin console: the admin's own
// school profile, its tours, and the bookings made against them. Every
// operation is scoped to the school linked to the authenticated admin.
type SchoolAdminHandler struct {
	SchoolService  school.SchoolService
	TourService    tour.TourService
	BookingService booking.BookingService
	ReportService  report.ReportService
}

// NewSchoolAdminHandler creates a SchoolAdminHandler.
func NewSchoolAdminHandler(schoolSvc school.SchoolService, tourSvc tour.TourService, bookingSvc booking.BookingService, reportSvc report.ReportService) *SchoolAdminHandler {
	return &SchoolAdminHandler{
		SchoolService:  schoolSvc,
		TourService:    tourSvc,
		BookingService: bookingSvc,
		ReportService:  reportSvc,
	}
}

// ownSchool resolves the school linked to the authenticated admin.
func (h *SchoolAdminHandler) ownSchool(c *gin.Context) (*models.School, bool) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	sch, err := h.SchoolService.GetByAdminID(adminID)
	if err != nil {
		utils.RespondError(c, err)
		return nil, false
	}
	return sch, true
}

// GetSchoolProfileHandler handles GET /api/school-admin/school.
func (h *SchoolAdminHandler) GetSchoolProfileHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sch)
}

// UpdateSchoolProfileHandler handles PUT /api/school-admin/school.
func (h *SchoolAdminHandler) UpdateSchoolProfileHandler(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.SchoolUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	sch, err := h.SchoolService.UpdateProfile(adminID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sch)
}

// ListToursHandler handles GET /api/school-admin/tours. Inactive tours
// are included so the admin can manage the full listing.
func (h *SchoolAdminHandler) ListToursHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	tours, err := h.TourService.ListForSchoolAdmin(sch.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// CreateTourHandler handles POST /api/school-admin/tours.
func (h *SchoolAdminHandler) CreateTourHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	t, err := h.TourService.Create(sch.ID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTourHandler handles PUT /api/school-admin/tours/:id.
func (h *SchoolAdminHandler) UpdateTourHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	t, err := h.TourService.Update(sch.ID, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTourHandler handles DELETE /api/school-admin/tours/:id. Tours
// with existing bookings cannot be deleted, only deactivated.
func (h *SchoolAdminHandler) DeleteTourHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	if err := h.TourService.Delete(sch.ID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tour deleted"})
}

// ListBookingsHandler handles GET /api/school-admin/bookings.
func (h *SchoolAdminHandler) ListBookingsHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	bookings, err := h.BookingService.ListSchoolBookings(sch.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatusHandler handles PUT /api/school-admin/bookings/:id/status.
func (h *SchoolAdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	b, err := h.BookingService.UpdateStatus(c.Request.Context(), sch.ID, c.Param("id"), models.BookingStatus(req.Status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DashboardHandler handles GET /api/school-admin/dashboard.
func (h *SchoolAdminHandler) DashboardHandler(c *gin.Context) {
	sch, ok := h.ownSchool(c)
	if !ok {
		return
	}

	dash, err := h.ReportService.SchoolDashboard(sch.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
