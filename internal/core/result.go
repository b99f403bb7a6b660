// Package core runs the sunshift decision loop.
package core

import (
	"fmt"
	"time"

	"github.com/darkawower/sunshift/internal/solar"
	"github.com/darkawower/sunshift/internal/theme"
)

// TickResult represents the outcome of one evaluation.
type TickResult struct {
	// At is the evaluated instant in the location's frame.
	At time.Time

	// Target is the appearance daylight calls for.
	Target theme.Target

	// Desired is the theme id mapped from Target.
	Desired string

	// Current is the theme id that was active before the tick.
	Current string

	// Changed indicates the desired theme was applied.
	Changed bool

	// SunTimes are the sun times used for the decision.
	SunTimes solar.SunTimes

	// NextTransition is when Target flips next.
	NextTransition time.Time

	// Err is the first failure of the tick, if any.
	Err error
}

// NextChange formats the upcoming transition, e.g. "sunset (20:14)".
func (r TickResult) NextChange() string {
	if r.NextTransition.IsZero() {
		return r.Target.Transition()
	}
	return fmt.Sprintf("%s (%s)", r.Target.Transition(), r.NextTransition.Format("15:04"))
}

// AgentStatus represents the status of the background agent.
type AgentStatus struct {
	// Supported indicates if the agent is supported on this platform.
	Supported bool

	// Installed indicates if the agent is installed.
	Installed bool

	// Running indicates if the agent is currently running.
	Running bool

	// Interval is the poll interval the daemon runs with.
	Interval time.Duration

	// LogPath is the path to the agent log file.
	LogPath string
}
