package model

import "fmt"

// Zone identifies one of the parking areas.
type Zone string

const (
	ZoneS Zone = "S"
	ZoneR Zone = "R"
)

// Zones lists the configured zones in display order.
var Zones = []Zone{ZoneS, ZoneR}

// Valid reports whether z is one of the known zones.
func (z Zone) Valid() bool {
	for _, known := range Zones {
		if z == known {
			return true
		}
	}
	return false
}

// ZoneConfig holds the static slot counts of a zone.
type ZoneConfig struct {
	TotalSlots     int `json:"totalSlots" yaml:"totalSlots"`
	UserSlots      int `json:"userSlots" yaml:"userSlots"`
	EmployeeSlots  int `json:"employeeSlots" yaml:"employeeSlots"`
	EmergencySlots int `json:"emergencySlots" yaml:"emergencySlots"`
}

// Count returns the configured number of slots for a category.
func (c ZoneConfig) Count(category SlotCategory) int {
	switch category {
	case SlotCategoryEmployee:
		return c.EmployeeSlots
	case SlotCategoryEmergency:
		return c.EmergencySlots
	default:
		return c.UserSlots
	}
}

// Validate checks the counts are non-negative and add up to TotalSlots.
func (c ZoneConfig) Validate() error {
	if c.UserSlots < 0 || c.EmployeeSlots < 0 || c.EmergencySlots < 0 {
		return fmt.Errorf("slot counts must not be negative")
	}
	if sum := c.UserSlots + c.EmployeeSlots + c.EmergencySlots; sum != c.TotalSlots {
		return fmt.Errorf("slot counts add up to %d, want totalSlots %d", sum, c.TotalSlots)
	}
	return nil
}

// ZoneConfigs maps each zone to its configuration.
type ZoneConfigs map[Zone]ZoneConfig

// DefaultZoneConfigs returns the built-in configuration for both zones.
func DefaultZoneConfigs() ZoneConfigs {
	return ZoneConfigs{
		ZoneS: {TotalSlots: 100, UserSlots: 40, EmployeeSlots: 55, EmergencySlots: 5},
		ZoneR: {TotalSlots: 100, UserSlots: 45, EmployeeSlots: 50, EmergencySlots: 5},
	}
}

// Validate checks every known zone is configured and valid.
func (zc ZoneConfigs) Validate() error {
	for zone := range zc {
		if !zone.Valid() {
			return fmt.Errorf("unknown zone %q", zone)
		}
	}
	for _, zone := range Zones {
		cfg, ok := zc[zone]
		if !ok {
			return fmt.Errorf("zone %s is not configured", zone)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("zone %s: %w", zone, err)
		}
	}
	return nil
}
