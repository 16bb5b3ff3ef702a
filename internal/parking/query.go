package parking

import "parkly/internal/model"

// Stats counts the user slots of a zone by status.
func Stats(t Table, zone model.Zone) model.ZoneStats {
	stats := model.ZoneStats{Zone: zone, Total: len(t[zone])}
	for _, slot := range t[zone] {
		if slot.Category != model.SlotCategoryUser {
			continue
		}
		switch slot.Status {
		case model.SlotStatusAvailable:
			stats.Available++
		case model.SlotStatusReserved:
			stats.Reserved++
		case model.SlotStatusOccupied:
			stats.Occupied++
		}
	}
	return stats
}

// UserBookings returns every booked slot held by the given vehicle.
func UserBookings(t Table, vehicleNumber string) []model.ParkingSlot {
	bookings := []model.ParkingSlot{}
	if vehicleNumber == "" {
		return bookings
	}
	for _, slot := range t.All() {
		if slot.Status != model.SlotStatusAvailable && slot.OccupantVehicle == vehicleNumber {
			bookings = append(bookings, slot)
		}
	}
	return bookings
}
