package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"parkly/internal/model"
)

// LoadZones reads the zone configuration from a YAML file. Zones missing from
// the file keep their built-in configuration. An empty path returns the
// defaults.
//
//	S:
//	  totalSlots: 100
//	  userSlots: 40
//	  employeeSlots: 55
//	  emergencySlots: 5
func LoadZones(path string) (model.ZoneConfigs, error) {
	zones := model.DefaultZoneConfigs()
	if path == "" {
		return zones, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}
	return ParseZones(data)
}

// ParseZones decodes YAML zone configuration over the defaults.
func ParseZones(data []byte) (model.ZoneConfigs, error) {
	var overrides map[model.Zone]model.ZoneConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}

	zones := model.DefaultZoneConfigs()
	for zone, cfg := range overrides {
		zones[zone] = cfg
	}
	if err := zones.Validate(); err != nil {
		return nil, fmt.Errorf("invalid zones: %w", err)
	}
	return zones, nil
}
