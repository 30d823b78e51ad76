package report

import (
	"time"

	bookingRepo "tourbook/database/repository/booking"
	schoolRepo "tourbook/database/repository/school"
	tourRepo "tourbook/database/repository/tour"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/utils"
)

const topSchoolLimit = 5

// ReportService produces read-only aggregate views for the admin
// dashboards.
type ReportService interface {
	PlatformReport() (*models.PlatformReport, error)
	SchoolDashboard(schoolID string) (*models.SchoolDashboard, error)
}

// DefaultReportService composes aggregation queries across the stores.
type DefaultReportService struct {
	UserRepo    userRepo.UserRepository
	SchoolRepo  schoolRepo.SchoolRepository
	TourRepo    tourRepo.TourRepository
	BookingRepo bookingRepo.BookingRepository
}

// PlatformReport builds the system-admin dashboard.
func (svc *DefaultReportService) PlatformReport() (*models.PlatformReport, error) {
	usersByRole, err := svc.UserRepo.CountByRole()
	if err != nil {
		return nil, utils.NewInternalError("failed to aggregate users", err)
	}
	schoolsByStatus, err := svc.SchoolRepo.CountByVerification()
	if err != nil {
		return nil, utils.NewInternalError("failed to aggregate schools", err)
	}
	bookingsByStatus, err := svc.BookingRepo.CountByStatus("")
	if err != nil {
		return nil, utils.NewInternalError("failed to aggregate bookings", err)
	}
	today := time.Now().Format(utils.TourDateLayout)
	upcoming, err := svc.TourRepo.CountUpcoming(today)
	if err != nil {
		return nil, utils.NewInternalError("failed to count tours", err)
	}
	topSchools, err := svc.BookingRepo.TopSchools(topSchoolLimit)
	if err != nil {
		return nil, utils.NewInternalError("failed to rank schools", err)
	}

	return &models.PlatformReport{
		UsersByRole:      usersByRole,
		SchoolsByStatus:  schoolsByStatus,
		BookingsByStatus: bookingsByStatus,
		ToursScheduled:   upcoming,
		TopSchools:       topSchools,
	}, nil
}

// SchoolDashboard builds the school-admin aggregate view.
func (svc *DefaultReportService) SchoolDashboard(schoolID string) (*models.SchoolDashboard, error) {
	bookingsByStatus, err := svc.BookingRepo.CountByStatus(schoolID)
	if err != nil {
		return nil, utils.NewInternalError("failed to aggregate bookings", err)
	}
	today := time.Now().Format(utils.TourDateLayout)
	fillRates, err := svc.TourRepo.UpcomingFillRates(schoolID, today)
	if err != nil {
		return nil, utils.NewInternalError("failed to compute fill rates", err)
	}

	return &models.SchoolDashboard{
		BookingsByStatus: bookingsByStatus,
		UpcomingTours:    fillRates,
	}, nil
}
