package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTourAvailableSpots(t *testing.T) {
	tour := Tour{MaxCapacity: 20, CurrentBookings: 14}
	assert.Equal(t, 6, tour.AvailableSpots())

	tour.CurrentBookings = 20
	assert.Zero(t, tour.AvailableSpots())
}

func TestTourHasSlot(t *testing.T) {
	tour := Tour{TimeSlots: []TimeSlot{
		{StartTime: "09:00", EndTime: "10:30"},
		{StartTime: "14:00", EndTime: "15:30"},
	}}

	assert.True(t, tour.HasSlot(TimeSlot{StartTime: "14:00", EndTime: "15:30"}))
	assert.False(t, tour.HasSlot(TimeSlot{StartTime: "14:00", EndTime: "16:00"}))
	assert.False(t, tour.HasSlot(TimeSlot{}))
}

func TestValidTourType(t *testing.T) {
	assert.True(t, ValidTourType(TourTypeVirtual))
	assert.True(t, ValidTourType(TourTypePhysical))
	assert.True(t, ValidTourType(TourTypeHybrid))
	assert.False(t, ValidTourType("OpenDay"))
	assert.False(t, ValidTourType(""))
}
