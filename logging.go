package prefs

import "time"

// UpdateLogEvent describes one dependency rule application.
type UpdateLogEvent struct {
	Rule     string
	Source   string
	Target   string
	Minimum  float64
	Maximum  float64
	Previous string
	Value    string
	Reset    bool
	Duration time.Duration
	Err      error
	// HookErr carries activity hook failures; they never abort an update.
	HookErr error
}

// UpdateLogger records dependency update events.
type UpdateLogger interface {
	LogUpdate(UpdateLogEvent)
}

// UpdateLoggerFunc adapts a function to UpdateLogger.
type UpdateLoggerFunc func(UpdateLogEvent)

// LogUpdate implements UpdateLogger.
func (f UpdateLoggerFunc) LogUpdate(event UpdateLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopUpdateLogger struct{}

func (noopUpdateLogger) LogUpdate(UpdateLogEvent) {}
