// Package theme defines the light/dark target sunshift drives the desktop to.
package theme

// Target represents the desired appearance.
type Target string

const (
	Light Target = "light"
	Dark  Target = "dark"
)

// ForDaylight maps daylight state to a target.
func ForDaylight(daylight bool) Target {
	if daylight {
		return Light
	}
	return Dark
}

// Pick returns lightID or darkID depending on t. Unknown targets map to dark.
func (t Target) Pick(lightID, darkID string) string {
	if t == Light {
		return lightID
	}
	return darkID
}

// Title returns the capitalized name used in notifications.
func (t Target) Title() string {
	switch t {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return string(t)
	}
}

// Transition names the event that ends the current target.
func (t Target) Transition() string {
	if t == Light {
		return "sunset"
	}
	return "sunrise"
}

// String returns the string representation of the target.
func (t Target) String() string {
	return string(t)
}
