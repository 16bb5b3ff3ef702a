package parking

import (
	"fmt"

	"parkly/internal/model"
)

// SlotID builds the stable id of a slot, e.g. "S-USR-7".
func SlotID(zone model.Zone, category model.SlotCategory, n int) string {
	return fmt.Sprintf("%s-%s-%d", zone, category.Code(), n)
}

// Generate builds the initial slot table for every configured zone.
// Within a zone, employee slots come first, then emergency, then user slots,
// each numbered from 1.
func Generate(zones model.ZoneConfigs) Table {
	table := make(Table, len(zones))
	for zone, cfg := range zones {
		table[zone] = GenerateZone(zone, cfg)
	}
	return table
}

// GenerateZone builds the slots of a single zone.
func GenerateZone(zone model.Zone, cfg model.ZoneConfig) []model.ParkingSlot {
	slots := make([]model.ParkingSlot, 0, cfg.UserSlots+cfg.EmployeeSlots+cfg.EmergencySlots)
	for _, category := range model.Categories {
		for i := 1; i <= cfg.Count(category); i++ {
			slots = append(slots, model.ParkingSlot{
				ID:         SlotID(zone, category, i),
				SlotNumber: i,
				Zone:       zone,
				Category:   category,
				Status:     model.SlotStatusAvailable,
			})
		}
	}
	return slots
}
