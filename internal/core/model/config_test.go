package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTarget(t *testing.T) {
	for input, want := range map[int]int{-10: 5, 0: 5, 4: 5, 5: 5, 90: 90} {
		assert.Equal(t, want, ClampTarget(input), "input %d", input)
	}
}

func TestAlertModeChannels(t *testing.T) {
	tests := []struct {
		mode     AlertMode
		vibrates bool
		sounds   bool
	}{
		{AlertBoth, true, true},
		{AlertVibration, true, false},
		{AlertSound, false, true},
		{AlertNone, false, false},
	}
	for _, tt := range tests {
		assert.True(t, tt.mode.Valid())
		assert.Equal(t, tt.vibrates, tt.mode.Vibrates(), tt.mode)
		assert.Equal(t, tt.sounds, tt.mode.Sounds(), tt.mode)
	}
	assert.False(t, AlertMode("loud").Valid())
}

func TestTimerModeToggled(t *testing.T) {
	assert.Equal(t, ModeStopwatch, ModeCountdown.Toggled())
	assert.Equal(t, ModeCountdown, ModeStopwatch.Toggled())
	assert.False(t, TimerMode("lap").Valid())
}

func TestSectionIDValid(t *testing.T) {
	for _, id := range SectionIDs {
		assert.True(t, id.Valid(), id)
	}
	assert.False(t, SectionID("warmup").Valid())
}

func TestCloneIsDeep(t *testing.T) {
	config := DefaultTimerConfig()
	clone := config.Clone()
	clone.Sections[SectionTotal] = SectionConfig{DefaultSeconds: 10}
	assert.Equal(t, 3600, config.Sections[SectionTotal].DefaultSeconds)
}

func TestNormalizedRepairsConfig(t *testing.T) {
	config := TimerConfig{
		AlertMode: "loud",
		Sections: map[SectionID]SectionConfig{
			SectionSet:     {Enabled: false, DefaultSeconds: 2, Mode: "lap"},
			SectionID("x"): {Enabled: true, DefaultSeconds: 30, Mode: ModeCountdown},
		},
	}
	normalized := config.Normalized()
	defaults := DefaultTimerConfig()

	assert.Equal(t, AlertBoth, normalized.AlertMode)
	assert.Len(t, normalized.Sections, len(SectionIDs))
	assert.Equal(t, SectionConfig{Enabled: false, DefaultSeconds: 5, Mode: ModeStopwatch}, normalized.Sections[SectionSet])
	assert.Equal(t, defaults.Sections[SectionSetRest], normalized.Sections[SectionSetRest])
	assert.Len(t, config.Sections, 2)
}
