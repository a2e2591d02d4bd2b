package alert

import (
	"time"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"fitbuddy/internal/safego"
)

// Notifier is the part of fyne.App used to raise desktop notifications.
type Notifier interface {
	SendNotification(*fyne.Notification)
}

// NotificationVibrator stands in for vibration on desktops by raising a
// system notification.
type NotificationVibrator struct {
	notifier Notifier
	title    string
	message  string
	logger   *zap.Logger
}

// NewNotificationVibrator creates a vibrator posting through notifier.
func NewNotificationVibrator(notifier Notifier, title, message string, logger *zap.Logger) *NotificationVibrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationVibrator{notifier: notifier, title: title, message: message, logger: logger}
}

// Vibrate posts one notification; the pattern has no desktop equivalent.
// Posting can be a synchronous D-Bus call, so it runs on its own goroutine.
func (vibrator *NotificationVibrator) Vibrate([]time.Duration) {
	if vibrator == nil || vibrator.notifier == nil {
		return
	}
	notification := fyne.NewNotification(vibrator.title, vibrator.message)
	safego.Go(vibrator.logger, func() {
		vibrator.notifier.SendNotification(notification)
	})
}
