// Package notify shows invocation confirmations as desktop notifications or log lines.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"copytext/internal/core"
)

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

// Desktop sends native notifications. Failures are logged and dropped.
type Desktop struct {
	title  string
	notify notifyFunc
	logger *zap.Logger
}

func NewDesktop(title string, logger *zap.Logger) *Desktop {
	return &Desktop{title: title, notify: beeep.Notify, logger: logger}
}

func (d *Desktop) Show(message string) {
	if err := d.notify(d.title, message, ""); err != nil {
		d.logger.Warn("Failed to show notification", zap.Error(err), zap.String("message", message))
		return
	}
	d.logger.Debug("Notification shown", zap.String("message", message))
}

// Log writes notifications to the logger only, for headless runs.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Show(message string) {
	l.logger.Info("Notification", zap.String("message", message))
}

// Multi fans a notification out to several notifiers.
type Multi []core.Notifier

func (m Multi) Show(message string) {
	for _, n := range m {
		n.Show(message)
	}
}

// New logs every notification and also shows it on the desktop when enabled.
func New(config *core.NotifyConfig, logger *zap.Logger) core.Notifier {
	if config.Desktop {
		return Multi{NewDesktop(config.Title, logger), NewLog(logger)}
	}
	return NewLog(logger)
}
