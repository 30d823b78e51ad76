package models

// StatusCount is one bucket of an aggregation grouped by a string key.
type StatusCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int    `bson:"count" json:"count"`
}

// SchoolBookingVolume ranks a school by total bookings received.
type SchoolBookingVolume struct {
	SchoolID string `bson:"_id" json:"schoolId"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Bookings int    `bson:"bookings" json:"bookings"`
}

// PlatformReport is the system-admin aggregate dashboard.
type PlatformReport struct {
	UsersByRole      []StatusCount         `json:"usersByRole"`
	SchoolsByStatus  []StatusCount         `json:"schoolsByStatus"`
	BookingsByStatus []StatusCount         `json:"bookingsByStatus"`
	ToursScheduled   int                   `json:"toursScheduled"`
	TopSchools       []SchoolBookingVolume `json:"topSchools"`
}

// TourFillRate reports occupancy for one upcoming tour.
type TourFillRate struct {
	TourID          string  `bson:"id" json:"tourId"`
	Title           string  `bson:"title" json:"title"`
	Date            string  `bson:"date" json:"date"`
	MaxCapacity     int     `bson:"maxCapacity" json:"maxCapacity"`
	CurrentBookings int     `bson:"currentBookings" json:"currentBookings"`
	FillRate        float64 `bson:"fillRate" json:"fillRate"`
}

// SchoolDashboard is the school-admin aggregate view.
type SchoolDashboard struct {
	BookingsByStatus []StatusCount  `json:"bookingsByStatus"`
	UpcomingTours    []TourFillRate `json:"upcomingTours"`
}
