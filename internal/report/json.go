package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

// JSON encodes r as indented JSON with keys sorted at every level and
// RFC 3339 timestamps.
func JSON(r *check.Report) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	// decoding into generic maps lets the encoder sort every object's keys
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}

	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
	}
	return append(out, '\n'), nil
}

// ParseJSON decodes a report written by JSON
func ParseJSON(data []byte) (*check.Report, error) {
	var r check.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
