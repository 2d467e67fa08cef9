package metrics

import "time"

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NoopMetrics is a zero-overhead Recorder used when metrics are disabled
type NoopMetrics struct{}

// NewNoopMetrics creates a new noop metrics recorder
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {}
func (n *NoopMetrics) IncHTTPRequestsInFlight()                                              {}
func (n *NoopMetrics) DecHTTPRequestsInFlight()                                              {}
func (n *NoopMetrics) RecordSignup(result string)                                            {}
func (n *NoopMetrics) RecordLogin(result string)                                             {}
func (n *NoopMetrics) RecordTokenVerification(result string)                                 {}
func (n *NoopMetrics) RecordOrphanedSignup()                                                 {}
func (n *NoopMetrics) RecordStoreError(operation string)                                     {}
