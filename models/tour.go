package models

import "time"

// Tour types.
const (
	TourTypeVirtual  = "Virtual"
	TourTypePhysical = "Physical"
	TourTypeHybrid   = "Hybrid"
)

// Tour is a scheduled visitation event offered by a school.
type Tour struct {
	ID              string     `bson:"id" json:"id"`
	SchoolID        string     `bson:"schoolId" json:"schoolId"` // Immutable after creation.
	Title           string     `bson:"title" json:"title"`
	Date            string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	TimeSlots       []TimeSlot `bson:"timeSlots" json:"timeSlots"`
	MaxCapacity     int        `bson:"maxCapacity" json:"maxCapacity"`
	CurrentBookings int        `bson:"currentBookings" json:"currentBookings"`
	TourType        string     `bson:"tourType" json:"tourType"`
	IsActive        bool       `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// TimeSlot is one offered visiting window on a tour's date.
type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM"
}

// AvailableSpots is the authoritative remaining capacity for a tour.
func (t *Tour) AvailableSpots() int {
	return t.MaxCapacity - t.CurrentBookings
}

// HasSlot reports whether slot matches one of the tour's offered slots.
func (t *Tour) HasSlot(slot TimeSlot) bool {
	for _, ts := range t.TimeSlots {
		if ts.StartTime == slot.StartTime && ts.EndTime == slot.EndTime {
			return true
		}
	}
	return false
}

// ValidTourType reports whether tt is a recognized tour type.
func ValidTourType(tt string) bool {
	switch tt {
	case TourTypeVirtual, TourTypePhysical, TourTypeHybrid:
		return true
	}
	return false
}
