package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventSubmissionAccepted: SeverityINFO,

	// Ordinary user mistakes
	EventValidationFailed: SeverityMEDIUM,

	// Abuse signals, monitor
	EventRateLimitTriggered: SeverityWARN,
	EventSpamDetected:       SeverityWARN,
	EventBotRejected:        SeverityWARN,

	// A real visitor lost a message
	EventDispatchFailed: SeverityHIGH,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// zapLevel maps a severity onto the log level it is written at.
func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
