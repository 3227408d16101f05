package kintai

import "log/slog"

// Notificator is told whenever a user's work state transitions.
type Notificator interface {
	Notify(event, message string) error
}

// LogNotificator writes transition notifications to the service log.
// Deployments wanting desktop or chat notifications swap in their own.
type LogNotificator struct {
	Logger *slog.Logger
}

func (n *LogNotificator) Notify(event, message string) error {
	n.Logger.Info(message, slog.String("event", event))
	return nil
}

// NopNotificator discards notifications.
type NopNotificator struct{}

func (NopNotificator) Notify(event, message string) error { return nil }
