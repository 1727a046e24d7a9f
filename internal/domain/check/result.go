package check

import (
	"encoding/json"
	"time"
)

// Result is the outcome of one check in one scan. It is immutable once
// created.
type Result struct {
	definition        Definition
	status            Status
	details           string
	timestamp         time.Time
	requiresElevation bool
}

// NewResult creates a result. An invalid status is recorded as Unknown.
func NewResult(def Definition, status Status, details string, timestamp time.Time, requiresElevation bool) *Result {
	if !status.IsValid() {
		status = StatusUnknown
	}
	return &Result{
		definition:        def.Clone(),
		status:            status,
		details:           details,
		timestamp:         timestamp,
		requiresElevation: requiresElevation,
	}
}

// Getters

func (r *Result) Definition() Definition  { return r.definition.Clone() }
func (r *Result) CheckID() string         { return r.definition.ID }
func (r *Result) Name() string            { return r.definition.Name }
func (r *Result) Category() Category      { return r.definition.Category }
func (r *Result) Severity() int           { return r.definition.Severity }
func (r *Result) Remediation() string     { return r.definition.Remediation }
func (r *Result) Status() Status          { return r.status }
func (r *Result) Details() string         { return r.details }
func (r *Result) Timestamp() time.Time    { return r.timestamp }
func (r *Result) RequiresElevation() bool { return r.requiresElevation }

// Points returns this result's contribution to the score
func (r *Result) Points() int {
	return r.status.Points(r.definition.Severity)
}

// resultJSON is the wire form of a Result
type resultJSON struct {
	Check             Definition `json:"check"`
	Status            Status     `json:"status"`
	Details           string     `json:"details"`
	Timestamp         time.Time  `json:"timestamp"`
	RequiresElevation bool       `json:"requires_elevation"`
}

// MarshalJSON encodes the result including its definition snapshot
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Check:             r.definition,
		Status:            r.status,
		Details:           r.details,
		Timestamp:         r.timestamp.UTC(),
		RequiresElevation: r.requiresElevation,
	})
}

// UnmarshalJSON restores a result written by MarshalJSON
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = *NewResult(raw.Check, raw.Status, raw.Details, raw.Timestamp, raw.RequiresElevation)
	return nil
}
