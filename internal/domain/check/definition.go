package check

import (
	"fmt"
	"strings"

	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

// Category groups checks into one of the fixed security domains
type Category string

const (
	CategoryOSHardening         Category = "OS & Firmware Hardening"
	CategoryAuthentication      Category = "User Authentication & Access Control"
	CategoryDiskProtection      Category = "Disk & Data Protection"
	CategoryApplicationSecurity Category = "Application Security & Execution"
	CategoryPrivacy             Category = "Permissions & Privacy (TCC)"
	CategoryNetworkSecurity     Category = "Network Security"
	CategoryMalwareProtection   Category = "Malware & Threat Protection"
	CategorySystemIntegrity     Category = "System Integrity & Tamper Protection"
	CategoryLoggingAuditing     Category = "Logging, Monitoring & Auditing"
	CategoryCompliance          Category = "Compliance & Posture Assessment"
)

var categories = []Category{
	CategoryOSHardening,
	CategoryAuthentication,
	CategoryDiskProtection,
	CategoryApplicationSecurity,
	CategoryPrivacy,
	CategoryNetworkSecurity,
	CategoryMalwareProtection,
	CategorySystemIntegrity,
	CategoryLoggingAuditing,
	CategoryCompliance,
}

// Categories returns every category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category by its full name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(string(known), s) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", sharedErrors.ErrUnknownCategory, s)
}

const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Definition describes one probe in the catalogue. Definitions are values;
// the registry hands out copies.
type Definition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Hint        string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	Severity    int      `json:"severity" yaml:"severity"`
	Enforceable bool     `json:"enforceable" yaml:"enforceable"`
	Remediation string   `json:"remediation,omitempty" yaml:"remediation,omitempty"`
	APIs        []string `json:"apis" yaml:"apis"`
}

// Validate checks the structural invariants of a definition
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return sharedErrors.ErrEmptyCheckID
	}
	if d.Severity < MinSeverity || d.Severity > MaxSeverity {
		return fmt.Errorf("%w: %s has severity %d", sharedErrors.ErrInvalidSeverity, d.ID, d.Severity)
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %s has category %q", sharedErrors.ErrUnknownCategory, d.ID, d.Category)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: %s has no name", sharedErrors.ErrInvalidDefinition, d.ID)
	}
	return nil
}

// HasRemediation reports whether remediation guidance exists
func (d Definition) HasRemediation() bool {
	return strings.TrimSpace(d.Remediation) != ""
}

// Clone returns a deep copy so callers cannot alias the APIs slice
func (d Definition) Clone() Definition {
	if d.APIs != nil {
		apis := make([]string, len(d.APIs))
		copy(apis, d.APIs)
		d.APIs = apis
	}
	return d
}
