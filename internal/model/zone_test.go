package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneConfigs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		zones   ZoneConfigs
		wantErr bool
	}{
		{name: "defaults", zones: DefaultZoneConfigs()},
		{
			name: "counts do not add up",
			zones: ZoneConfigs{
				ZoneS: {TotalSlots: 100, UserSlots: 40, EmployeeSlots: 50, EmergencySlots: 5},
				ZoneR: DefaultZoneConfigs()[ZoneR],
			},
			wantErr: true,
		},
		{
			name: "negative count",
			zones: ZoneConfigs{
				ZoneS: {TotalSlots: 0, UserSlots: 5, EmployeeSlots: -5},
				ZoneR: DefaultZoneConfigs()[ZoneR],
			},
			wantErr: true,
		},
		{
			name:    "missing zone",
			zones:   ZoneConfigs{ZoneS: DefaultZoneConfigs()[ZoneS]},
			wantErr: true,
		},
		{
			name: "unknown zone",
			zones: ZoneConfigs{
				ZoneS: DefaultZoneConfigs()[ZoneS],
				ZoneR: DefaultZoneConfigs()[ZoneR],
				"Q":   {TotalSlots: 1, UserSlots: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.zones.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlotCategory(t *testing.T) {
	assert.True(t, SlotCategoryUser.Bookable())
	assert.False(t, SlotCategoryEmployee.Bookable())
	assert.False(t, SlotCategoryEmergency.Bookable())

	assert.Equal(t, "USR", SlotCategoryUser.Code())
	assert.Equal(t, "EMP", SlotCategoryEmployee.Code())
	assert.Equal(t, "EMG", SlotCategoryEmergency.Code())
}

func TestZone_Valid(t *testing.T) {
	assert.True(t, ZoneS.Valid())
	assert.True(t, ZoneR.Valid())
	assert.False(t, Zone("s").Valid())
}
