//go:build linux

package linux

import (
	"context"
	"fmt"

	"github.com/darkawower/sunshift/internal/platform"
)

const (
	AppName          = "sunshift"
	notificationIcon = "preferences-desktop-theme"
)

// NotifierService sends desktop notifications through notify-send.
type NotifierService struct {
	run platform.Runner
}

func NewNotifierService(run platform.Runner) *NotifierService {
	return &NotifierService{run: run}
}

func (s *NotifierService) Notify(ctx context.Context, title, message string) error {
	if _, err := s.run(ctx, "notify-send", "-a", AppName, "-i", notificationIcon, title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
