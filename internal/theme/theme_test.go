package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForDaylight(t *testing.T) {
	assert.Equal(t, Light, ForDaylight(true))
	assert.Equal(t, Dark, ForDaylight(false))
}

func TestTarget_Pick(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		expected string
	}{
		{"light", Light, "org.kde.breeze.desktop"},
		{"dark", Dark, "org.kde.breezedark.desktop"},
		{"unknown defaults to dark", Target("unknown"), "org.kde.breezedark.desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.target.Pick("org.kde.breeze.desktop", "org.kde.breezedark.desktop"))
		})
	}
}

func TestTarget_Title(t *testing.T) {
	assert.Equal(t, "Light", Light.Title())
	assert.Equal(t, "Dark", Dark.Title())
	assert.Equal(t, "sepia", Target("sepia").Title())
}

func TestTarget_Transition(t *testing.T) {
	assert.Equal(t, "sunset", Light.Transition())
	assert.Equal(t, "sunrise", Dark.Transition())
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, "dark", Dark.String())
}

func TestTargetConstants(t *testing.T) {
	assert.Equal(t, Target("light"), Light)
	assert.Equal(t, Target("dark"), Dark)
}
