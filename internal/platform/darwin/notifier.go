//go:build darwin

package darwin

import (
	"context"
	"fmt"
	"strings"

	"github.com/darkawower/sunshift/internal/platform"
)

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// NotifierService posts notifications through osascript.
type NotifierService struct {
	run platform.Runner
}

func NewNotifierService(run platform.Runner) *NotifierService {
	return &NotifierService{run: run}
}

func (s *NotifierService) Notify(ctx context.Context, title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		appleScriptEscaper.Replace(message), appleScriptEscaper.Replace(title))
	if _, err := s.run(ctx, "osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
