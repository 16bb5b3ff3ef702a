package model

import (
	"strconv"
	"time"
)

// SlotStatus represents the booking state of a parking slot.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusReserved  SlotStatus = "reserved"
	SlotStatusOccupied  SlotStatus = "occupied"
)

// SlotCategory is the fixed classification of a slot, set at generation.
type SlotCategory string

const (
	SlotCategoryUser      SlotCategory = "user"
	SlotCategoryEmployee  SlotCategory = "employee"
	SlotCategoryEmergency SlotCategory = "emergency"
)

// Categories lists slot categories in generation order.
var Categories = []SlotCategory{SlotCategoryEmployee, SlotCategoryEmergency, SlotCategoryUser}

// Bookable reports whether visitors may book slots of this category.
// Employee and emergency slots are display-only.
func (c SlotCategory) Bookable() bool {
	return c == SlotCategoryUser
}

// Code returns the short category code used in slot ids.
func (c SlotCategory) Code() string {
	switch c {
	case SlotCategoryEmployee:
		return "EMP"
	case SlotCategoryEmergency:
		return "EMG"
	default:
		return "USR"
	}
}

// ParkingSlot is a single parking space. Booking attributes are only set
// while the slot is not available.
type ParkingSlot struct {
	ID              string       `json:"id"`
	SlotNumber      int          `json:"slotNumber"`
	Zone            Zone         `json:"zone"`
	Category        SlotCategory `json:"category"`
	Status          SlotStatus   `json:"status"`
	OccupantName    string       `json:"occupantName,omitempty"`
	OccupantVehicle string       `json:"occupantVehicle,omitempty"`
	ArrivalTime     string       `json:"arrivalTime,omitempty"`
	DurationHours   int          `json:"durationHours,omitempty"`
	BookedAt        *time.Time   `json:"bookedAt,omitempty"`
}

// Bookable reports whether the slot's category allows booking.
func (s ParkingSlot) Bookable() bool {
	return s.Category.Bookable()
}

// Label is the human-readable slot name, e.g. "S-12".
func (s ParkingSlot) Label() string {
	return string(s.Zone) + "-" + strconv.Itoa(s.SlotNumber)
}

// HasBooking reports whether any booking attribute is set.
func (s ParkingSlot) HasBooking() bool {
	return s.OccupantName != "" || s.OccupantVehicle != "" || s.ArrivalTime != "" ||
		s.DurationHours != 0 || s.BookedAt != nil
}

// BookingRequest carries the booking form values.
type BookingRequest struct {
	ArrivalTime   string `json:"arrivalTime" validate:"required"`
	DurationHours int    `json:"durationHours" validate:"required,oneof=1 2 3 4 8"`
}

// ZoneStats are visitor-facing counts for one zone. Available, Reserved and
// Occupied cover user slots only; Total counts every slot in the zone.
type ZoneStats struct {
	Zone      Zone `json:"zone"`
	Total     int  `json:"total"`
	Available int  `json:"available"`
	Reserved  int  `json:"reserved"`
	Occupied  int  `json:"occupied"`
}
