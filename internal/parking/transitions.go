package parking

import (
	"strings"
	"time"

	"parkly/internal/errors"
	"parkly/internal/model"
)

// Slot lifecycle (user slots only; employee and emergency slots stay available):
//
//	available --Book--> reserved --ConfirmArrival--> occupied
//	reserved  --Cancel--> available
//	occupied  --Cancel--> available
//
// Every transition returns the new table and the updated slot. On error the
// original table is returned untouched.

// Book reserves an available user slot for the registered user.
func Book(t Table, user *model.User, slotID string, req model.BookingRequest, now time.Time) (Table, model.ParkingSlot, error) {
	zone, i, slot, err := locate(t, user, slotID)
	if err != nil {
		return t, model.ParkingSlot{}, err
	}
	if slot.Status != model.SlotStatusAvailable {
		return t, model.ParkingSlot{}, errors.ErrSlotNotAvailable
	}
	arrival := strings.TrimSpace(req.ArrivalTime)
	if arrival == "" {
		return t, model.ParkingSlot{}, errors.ErrInvalidArrivalTime
	}
	if req.DurationHours <= 0 {
		return t, model.ParkingSlot{}, errors.ErrInvalidDuration
	}

	bookedAt := now.UTC()
	slot.Status = model.SlotStatusReserved
	slot.OccupantName = user.Name
	slot.OccupantVehicle = user.VehicleNumber
	slot.ArrivalTime = arrival
	slot.DurationHours = req.DurationHours
	slot.BookedAt = &bookedAt
	return t.with(zone, i, slot), slot, nil
}

// ConfirmArrival marks a reserved slot as occupied, keeping its booking.
func ConfirmArrival(t Table, user *model.User, slotID string) (Table, model.ParkingSlot, error) {
	zone, i, slot, err := locate(t, user, slotID)
	if err != nil {
		return t, model.ParkingSlot{}, err
	}
	if err := checkOwner(slot, user); err != nil {
		return t, model.ParkingSlot{}, err
	}
	if slot.Status != model.SlotStatusReserved {
		return t, model.ParkingSlot{}, errors.ErrSlotNotReserved
	}

	slot.Status = model.SlotStatusOccupied
	return t.with(zone, i, slot), slot, nil
}

// Cancel releases a reserved or occupied slot back to its generated shape.
// Cancelling an available slot is rejected.
func Cancel(t Table, user *model.User, slotID string) (Table, model.ParkingSlot, error) {
	zone, i, slot, err := locate(t, user, slotID)
	if err != nil {
		return t, model.ParkingSlot{}, err
	}
	if slot.Status == model.SlotStatusAvailable {
		return t, model.ParkingSlot{}, errors.ErrSlotNotBooked
	}
	if err := checkOwner(slot, user); err != nil {
		return t, model.ParkingSlot{}, err
	}

	released := model.ParkingSlot{
		ID:         slot.ID,
		SlotNumber: slot.SlotNumber,
		Zone:       slot.Zone,
		Category:   slot.Category,
		Status:     model.SlotStatusAvailable,
	}
	return t.with(zone, i, released), released, nil
}

// locate applies the checks shared by every mutation: a registered user, an
// existing slot and a bookable category.
func locate(t Table, user *model.User, slotID string) (model.Zone, int, model.ParkingSlot, error) {
	if user == nil {
		return "", -1, model.ParkingSlot{}, errors.ErrUserNotRegistered
	}
	zone, i, ok := t.Find(slotID)
	if !ok {
		return "", -1, model.ParkingSlot{}, errors.ErrSlotNotFound
	}
	slot := t[zone][i]
	if !slot.Bookable() {
		return "", -1, model.ParkingSlot{}, errors.ErrSlotNotBookable
	}
	return zone, i, slot, nil
}

func checkOwner(slot model.ParkingSlot, user *model.User) error {
	if slot.Status != model.SlotStatusAvailable && slot.OccupantVehicle != user.VehicleNumber {
		return errors.ErrNotSlotOwner
	}
	return nil
}
