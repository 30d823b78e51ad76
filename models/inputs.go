package models

// CreateBookingRequest is the parent-facing booking creation payload.
type CreateBookingRequest struct {
	TourID           string   `json:"tourId" binding:"required"`
	SchoolID         string   `json:"schoolId" binding:"required"`
	NumberOfGuests   int      `json:"numberOfGuests"`
	SelectedTimeSlot TimeSlot `json:"selectedTimeSlot" binding:"required"`
}

// StatusUpdateRequest carries a school admin's target booking status.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// TourInput is the school-admin payload for creating or editing a tour.
type TourInput struct {
	Title       string     `json:"title" binding:"required"`
	Date        string     `json:"date" binding:"required"`
	TimeSlots   []TimeSlot `json:"timeSlots" binding:"required"`
	MaxCapacity int        `json:"maxCapacity" binding:"required"`
	TourType    string     `json:"tourType" binding:"required"`
	IsActive    *bool      `json:"isActive"`
}

// RatingInput is a parent's school review payload. Scores are 0-5.
type RatingInput struct {
	Facilities    int    `json:"facilities"`
	Teaching      int    `json:"teaching"`
	Safety        int    `json:"safety"`
	Environment   int    `json:"environment"`
	Communication int    `json:"communication"`
	Comment       string `json:"comment"`
}

// SchoolUpdateInput is the school-admin profile edit payload.
type SchoolUpdateInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	FeeRange    *FeeRange `json:"feeRange"`
}

// StartConversationRequest opens (or reuses) a parent/school thread.
type StartConversationRequest struct {
	SchoolID  string `json:"schoolId" binding:"required"`
	BookingID string `json:"bookingId"`
}

// SendMessageRequest carries one message body.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
