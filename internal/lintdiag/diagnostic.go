package lintdiag

import (
	"errors"
	"slices"
	"strings"
)

// Diagnostic is a single reported violation. Values are immutable once created with [New].
type Diagnostic struct {
	rule     *Descriptor
	location Location
	args     []string
	message  string
}

// New creates a diagnostic for the given rule. It fails with [ErrArgumentCountMismatch] when
// args do not cover every placeholder of the rule's message template.
func New(desc *Descriptor, loc Location, args ...string) (Diagnostic, error) {
	if desc == nil {
		return Diagnostic{}, errors.New("create diagnostic: nil descriptor")
	}

	msg, err := desc.Format(args...)
	if err != nil {
		return Diagnostic{}, err
	}

	return Diagnostic{
		rule:     desc,
		location: loc,
		args:     slices.Clone(args),
		message:  msg,
	}, nil
}

// RuleID returns the identifier of the rule that produced the diagnostic.
func (d Diagnostic) RuleID() string {
	if d.rule == nil {
		return ""
	}
	return d.rule.ID
}

func (d Diagnostic) Location() Location { return d.location }
func (d Diagnostic) Message() string    { return d.message }

// Args returns a copy of the substituted arguments.
func (d Diagnostic) Args() []string { return slices.Clone(d.args) }

// Severity returns the severity declared by the rule.
func (d Diagnostic) Severity() Severity {
	if d.rule == nil {
		return SeverityInvalid
	}
	return d.rule.Severity
}

// Category returns the category declared by the rule.
func (d Diagnostic) Category() string {
	if d.rule == nil {
		return ""
	}
	return d.rule.Category
}

// IsZero reports whether d was not created with [New].
func (d Diagnostic) IsZero() bool {
	return d.rule == nil
}

// Compare orders diagnostics by location, rule id and message.
func (d Diagnostic) Compare(other Diagnostic) int {
	if c := d.location.Compare(other.location); c != 0 {
		return c
	}
	if c := strings.Compare(d.RuleID(), other.RuleID()); c != 0 {
		return c
	}

	return strings.Compare(d.message, other.message)
}
