package reminder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/logger"
)

// ErrNoDisplay is returned by DesktopNotifier.Check when no graphical
// session is available to show notifications.
var ErrNoDisplay = errors.New("no desktop session available for notifications")

// Notifier delivers a single notification.
type Notifier interface {
	Notify(title, body string) error
}

// Checker is implemented by notifiers that can tell ahead of time whether
// delivery is possible.
type Checker interface {
	Check(ctx context.Context) error
}

var (
	getenvFunc = os.Getenv
	notifyFunc = func(title, body, icon string) error {
		return beeep.Notify(title, body, icon)
	}
)

// DesktopNotifier shows notifications through the operating system's
// notification service.
type DesktopNotifier struct {
	Icon       string
	MaxRetries int
	RetryDelay time.Duration
}

// NewDesktopNotifier returns a notifier using the default retry policy.
func NewDesktopNotifier(icon string) *DesktopNotifier {
	beeep.AppName = constants.AppName
	return &DesktopNotifier{
		Icon:       icon,
		MaxRetries: constants.NotifyMaxRetries,
		RetryDelay: constants.NotifyRetryDelay,
	}
}

// Notify sends the notification, retrying transient failures.
func (n *DesktopNotifier) Notify(title, body string) error {
	attempts := n.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = notifyFunc(title, body, n.Icon); err == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			time.Sleep(n.RetryDelay)
		}
	}
	return fmt.Errorf("failed to send notification after %d attempts: %w", attempts, err)
}

// Check reports whether a desktop session is reachable. On Linux and the
// BSDs that means an X11, Wayland or D-Bus session in the environment.
func (n *DesktopNotifier) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch runtime.GOOS {
	case "windows", "darwin":
		return nil
	}
	for _, key := range []string{"DISPLAY", "WAYLAND_DISPLAY", "DBUS_SESSION_BUS_ADDRESS"} {
		if getenvFunc(key) != "" {
			return nil
		}
	}
	return ErrNoDisplay
}
