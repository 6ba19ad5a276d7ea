// Package notify delivers one-line user-visible notifications. Components
// report outcomes here instead of printing; the console renders them styled,
// tests capture them with a recorder.
package notify

// Variant classifies a notification for presentation.
type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

// Notifier receives user-visible messages. Implementations must be safe for
// use from timer callbacks.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}
