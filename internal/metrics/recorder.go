package metrics

import "time"

// Recorder is the metrics recording interface used across the application.
// The Prometheus implementation and the noop implementation both satisfy it,
// so callers never branch on whether metrics are enabled.
type Recorder interface {
	// HTTP
	RecordHTTPRequest(method, path, status string, duration time.Duration)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()

	// Account flows
	RecordSignup(result string)
	RecordLogin(result string)
	RecordTokenVerification(result string)
	RecordOrphanedSignup()
	RecordStoreError(operation string)
}

// Result label values for account flow metrics
const (
	ResultSuccess      = "success"
	ResultRejected     = "rejected"
	ResultError        = "error"
	ResultInvalidInput = "invalid_input"
)
