package requirement

import (
	"errors"
	"fmt"
	"strings"
)

// Severity describes how strongly an unmet requirement should be surfaced.
type Severity string

const (
	// SeverityInfo is an informational recommendation.
	SeverityInfo Severity = "info"
	// SeverityWarning is something that should be addressed.
	SeverityWarning Severity = "warning"
	// SeverityError is something that must be addressed.
	SeverityError Severity = "error"
)

// ErrInvalidSeverity is returned when parsing an unknown severity.
var ErrInvalidSeverity = errors.New("severity must be info, warning, or error")

// IsValid returns true if the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a case-insensitive severity name. An empty string is info.
func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return SeverityInfo, nil
	}
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
	return v, nil
}
