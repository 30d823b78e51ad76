package handlers

import (
	"net/http"
	"strconv"

	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
	"tourbook/services/school"
	"tourbook/services/tour"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// SchoolHandler exposes the public school directory and parent-facing
// school operations.
type SchoolHandler struct {
	SchoolService school.SchoolService
	TourService   tour.TourService
}

// NewSchoolHandler creates a SchoolHandler.
func NewSchoolHandler(schoolSvc school.SchoolService, tourSvc tour.TourService) *SchoolHandler {
	return &SchoolHandler{SchoolService: schoolSvc, TourService: tourSvc}
}

// ListSchoolsHandler handles GET /api/schools.
func (h *SchoolHandler) ListSchoolsHandler(c *gin.Context) {
	filter := schoolRepo.SchoolFilter{Name: c.Query("name")}
	if v, err := strconv.Atoi(c.Query("feeMin")); err == nil {
		filter.FeeMin = v
	}
	if v, err := strconv.Atoi(c.Query("feeMax")); err == nil {
		filter.FeeMax = v
	}

	schools, err := h.SchoolService.ListVerified(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// GetSchoolHandler handles GET /api/schools/:id.
func (h *SchoolHandler) GetSchoolHandler(c *gin.Context) {
	s, err := h.SchoolService.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListSchoolToursHandler handles GET /api/schools/:id/tours. Only
// verified schools expose their tours publicly.
func (h *SchoolHandler) ListSchoolToursHandler(c *gin.Context) {
	s, err := h.SchoolService.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !s.Verified {
		utils.RespondError(c, utils.NewNotFoundError("school not found"))
		return
	}

	tours, err := h.TourService.ListPublic(s.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// SubmitRatingHandler handles POST /api/schools/:id/ratings (parent).
func (h *SchoolHandler) SubmitRatingHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	s, err := h.SchoolService.SubmitRating(parentID, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}
