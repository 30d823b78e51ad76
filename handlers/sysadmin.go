package handlers

import (
	"net/http"

	"tourbook/services/report"
	"tourbook/services/school"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// SystemAdminHandler exposes platform administration: user management,
// school verification, and platform-wide reports.
type SystemAdminHandler struct {
	UserService   user.UserService
	SchoolService school.SchoolService
	ReportService report.ReportService
}

// NewSystemAdminHandler creates a SystemAdminHandler.
func NewSystemAdminHandler(userSvc user.UserService, schoolSvc school.SchoolService, reportSvc report.ReportService) *SystemAdminHandler {
	return &SystemAdminHandler{
		UserService:   userSvc,
		SchoolService: schoolSvc,
		ReportService: reportSvc,
	}
}

// ListUsersHandler handles GET /api/admin/users.
func (h *SystemAdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.UserService.ListAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetUserActiveHandler handles PUT /api/admin/users/:id/active.
// Deactivation locks the account out on the next auth check.
func (h *SystemAdminHandler) SetUserActiveHandler(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	usr, err := h.UserService.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// ListSchoolsHandler handles GET /api/admin/schools. Unlike the public
// listing this includes unverified schools awaiting review.
func (h *SystemAdminHandler) ListSchoolsHandler(c *gin.Context) {
	schools, err := h.SchoolService.ListAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// VerifySchoolHandler handles PUT /api/admin/schools/:id/verify.
func (h *SystemAdminHandler) VerifySchoolHandler(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	sch, err := h.SchoolService.SetVerified(c.Param("id"), *req.Verified)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sch)
}

// PlatformReportHandler handles GET /api/admin/reports.
func (h *SystemAdminHandler) PlatformReportHandler(c *gin.Context) {
	rep, err := h.ReportService.PlatformReport()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
