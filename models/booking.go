package models

import "time"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no-show"
)

// validTransitions defines the admin-driven booking state machine.
// cancelled, completed and no-show are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingNoShow},
	BookingCancelled: {},
	BookingCompleted: {},
	BookingNoShow:    {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	return exists && len(allowed) == 0
}

// IsActive reports whether the booking still occupies tour capacity.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a parent's reservation of guest slots against a tour.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	TourID           string        `bson:"tourId" json:"tourId"`
	SchoolID         string        `bson:"schoolId" json:"schoolId"`
	ParentID         string        `bson:"parentId" json:"parentId"`
	NumberOfGuests   int           `bson:"numberOfGuests" json:"numberOfGuests"`
	SelectedTimeSlot TimeSlot      `bson:"selectedTimeSlot" json:"selectedTimeSlot"`
	TourDate         string        `bson:"tourDate" json:"tourDate"` // Denormalized from the tour for the overdue sweep.
	Status           BookingStatus `bson:"status" json:"status"`
	CancelledAt      *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}
