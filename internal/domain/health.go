package domain

import "time"

// HealthStatus is the overall probe verdict.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
)

// DBState reports data store connectivity.
type DBState string

const (
	DBStateConnected    DBState = "connected"
	DBStateDisconnected DBState = "disconnected"
)

// HealthRecord is built fresh for each liveness probe.
// On a degraded result exactly one of DBErrorMessage (production) or Error is set.
type HealthRecord struct {
	Status         HealthStatus `json:"status"`
	DB             DBState      `json:"db"`
	Timestamp      time.Time    `json:"timestamp"`
	ErrorCode      string       `json:"errorCode,omitempty"`
	ErrorHint      string       `json:"errorHint,omitempty"`
	DBErrorMessage string       `json:"dbErrorMessage,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// Healthy reports whether the probe succeeded.
func (h HealthRecord) Healthy() bool {
	return h.Status == HealthStatusOK
}
