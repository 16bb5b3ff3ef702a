package parking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"parkly/internal/model"
)

// Table is the slot inventory of every zone, each zone in generation order.
// A Table is treated as an immutable snapshot: operations return a new Table
// and never write through to the slices of the one they were given.
type Table map[model.Zone][]model.ParkingSlot

// Slots returns the slots of a zone.
func (t Table) Slots(zone model.Zone) []model.ParkingSlot {
	return t[zone]
}

// All returns every slot across zones in zone display order.
func (t Table) All() []model.ParkingSlot {
	var all []model.ParkingSlot
	for _, zone := range model.Zones {
		all = append(all, t[zone]...)
	}
	return all
}

// Len returns the number of slots in the table.
func (t Table) Len() int {
	n := 0
	for _, slots := range t {
		n += len(slots)
	}
	return n
}

// Find resolves a slot id to its zone and index.
func (t Table) Find(slotID string) (model.Zone, int, bool) {
	prefix, _, ok := strings.Cut(slotID, "-")
	if !ok {
		return "", -1, false
	}
	zone := model.Zone(prefix)
	for i, slot := range t[zone] {
		if slot.ID == slotID {
			return zone, i, true
		}
	}
	return "", -1, false
}

// Get returns the slot with the given id.
func (t Table) Get(slotID string) (model.ParkingSlot, bool) {
	zone, i, ok := t.Find(slotID)
	if !ok {
		return model.ParkingSlot{}, false
	}
	return t[zone][i], true
}

// with returns a copy of t where the slot at zone[i] is replaced. Only the
// affected zone slice is copied; other zones are shared with t.
func (t Table) with(zone model.Zone, i int, slot model.ParkingSlot) Table {
	next := make(Table, len(t))
	for z, slots := range t {
		next[z] = slots
	}
	zoneSlots := make([]model.ParkingSlot, len(t[zone]))
	copy(zoneSlots, t[zone])
	zoneSlots[i] = slot
	next[zone] = zoneSlots
	return next
}

// ETag returns a content hash of the table. Any transition changes it.
func (t Table) ETag() string {
	payload, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// Validate checks a loaded table still has the membership the zone
// configuration would generate and that every slot is internally consistent.
func (t Table) Validate(zones model.ZoneConfigs) error {
	if len(t) != len(zones) {
		return fmt.Errorf("table has %d zones, want %d", len(t), len(zones))
	}
	seen := make(map[string]struct{}, t.Len())
	for zone, cfg := range zones {
		slots, ok := t[zone]
		if !ok {
			return fmt.Errorf("zone %s missing", zone)
		}
		if len(slots) != cfg.TotalSlots {
			return fmt.Errorf("zone %s has %d slots, want %d", zone, len(slots), cfg.TotalSlots)
		}
		counts := make(map[model.SlotCategory]int, len(model.Categories))
		for _, slot := range slots {
			if _, dup := seen[slot.ID]; dup {
				return fmt.Errorf("duplicate slot id %s", slot.ID)
			}
			seen[slot.ID] = struct{}{}
			if slot.Zone != zone || slot.ID != SlotID(zone, slot.Category, slot.SlotNumber) {
				return fmt.Errorf("slot %s does not match zone %s", slot.ID, zone)
			}
			if err := validateSlotState(slot); err != nil {
				return fmt.Errorf("slot %s: %w", slot.ID, err)
			}
			counts[slot.Category]++
		}
		for _, category := range model.Categories {
			if counts[category] != cfg.Count(category) {
				return fmt.Errorf("zone %s has %d %s slots, want %d", zone, counts[category], category, cfg.Count(category))
			}
		}
	}
	return nil
}

func validateSlotState(slot model.ParkingSlot) error {
	switch slot.Status {
	case model.SlotStatusAvailable:
		if slot.HasBooking() {
			return fmt.Errorf("available slot carries booking attributes")
		}
	case model.SlotStatusReserved, model.SlotStatusOccupied:
		if !slot.Bookable() {
			return fmt.Errorf("%s slot is %s", slot.Category, slot.Status)
		}
		switch {
		case slot.OccupantName == "" || slot.OccupantVehicle == "":
			return fmt.Errorf("%s slot has no occupant", slot.Status)
		case slot.ArrivalTime == "":
			return fmt.Errorf("%s slot has no arrival time", slot.Status)
		case slot.DurationHours <= 0:
			return fmt.Errorf("%s slot has no duration", slot.Status)
		case slot.BookedAt == nil:
			return fmt.Errorf("%s slot has no booking time", slot.Status)
		}
	default:
		return fmt.Errorf("unknown status %q", slot.Status)
	}
	return nil
}
