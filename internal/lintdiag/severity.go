package lintdiag

import (
	"fmt"
)

// Severity describes how serious a reported violation is.
type Severity int

const (
	SeverityInvalid Severity = iota
	SeverityHint
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityValueMap = map[Severity]string{
	SeverityHint:    "hint",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	v, ok := severityValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}

	return v
}

// MarshalText for rendering values in configs and structured outputs.
func (s Severity) MarshalText() ([]byte, error) {
	v, ok := severityValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid severity %d", s)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (s *Severity) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range severityValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", text)
}
