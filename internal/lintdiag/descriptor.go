package lintdiag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArgumentCountMismatch is returned when a message template is given fewer arguments
	// than its placeholders refer to.
	ErrArgumentCountMismatch = errors.New("argument count mismatch")

	// ErrMalformedTemplate is returned for templates with unbalanced braces or non-numeric placeholders.
	ErrMalformedTemplate = errors.New("malformed message template")
)

// Descriptor identifies a check and describes how its findings are rendered.
//
// Descriptors are created once, usually as package level values of a rule, and must never
// be changed after that: diagnostics keep a reference to the descriptor they were created with.
type Descriptor struct {
	// ID is a stable unique identifier, like "DEMO001".
	ID string

	// Title is a short one line summary.
	Title string

	// MessageFormat is a template with positional placeholders: {0}, {1}, etc.
	// Literal braces are written as {{ and }}.
	MessageFormat string

	// Category groups related rules, like "Conventions" or "Reliability".
	Category string

	Severity         Severity
	EnabledByDefault bool

	// Description is a long explanation of the rule.
	Description string
}

// Validate checks the descriptor is usable: it has an identifier, a known severity and a well-formed template.
func (d *Descriptor) Validate() error {
	if d == nil {
		return errors.New("nil descriptor")
	}
	if d.ID == "" {
		return errors.New("descriptor has no id")
	}
	if _, ok := severityValueMap[d.Severity]; !ok {
		return fmt.Errorf("descriptor %s: invalid severity %d", d.ID, d.Severity)
	}
	if _, _, err := parseTemplate(d.MessageFormat); err != nil {
		return fmt.Errorf("descriptor %s: %w", d.ID, err)
	}

	return nil
}

// Format substitutes args into the message template positionally. Extra arguments are ignored.
func (d *Descriptor) Format(args ...string) (string, error) {
	segs, need, err := parseTemplate(d.MessageFormat)
	if err != nil {
		return "", fmt.Errorf("descriptor %s: %w", d.ID, err)
	}
	if len(args) < need {
		return "", fmt.Errorf(
			"descriptor %s: %w: template needs %d arguments, got %d",
			d.ID,
			ErrArgumentCountMismatch,
			need,
			len(args),
		)
	}

	var buf strings.Builder
	for _, s := range segs {
		if s.arg < 0 {
			buf.WriteString(s.text)
			continue
		}
		buf.WriteString(args[s.arg])
	}

	return buf.String(), nil
}

// segment is either a literal text (arg < 0) or a reference to a positional argument.
type segment struct {
	text string
	arg  int
}

// parseTemplate splits a template into segments and computes the number of arguments
// it requires, which is the highest placeholder index plus one.
func parseTemplate(tmpl string) ([]segment, int, error) {
	var (
		segs []segment
		lit  strings.Builder
		need int
	)

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String(), arg: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, 0, fmt.Errorf("%w: unterminated placeholder at offset %d", ErrMalformedTemplate, i)
			}
			raw := tmpl[i+1 : i+1+end]
			idx, ok := placeholderIndex(raw)
			if !ok {
				return nil, 0, fmt.Errorf("%w: invalid placeholder {%s}", ErrMalformedTemplate, raw)
			}

			flush()
			segs = append(segs, segment{arg: idx})
			need = max(need, idx+1)
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, 0, fmt.Errorf("%w: unbalanced '}' at offset %d", ErrMalformedTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segs, need, nil
}

// maxPlaceholderIndex bounds placeholder indexes.
const maxPlaceholderIndex = 255

// placeholderIndex parses a placeholder made of ASCII digits only.
func placeholderIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}

	idx := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		idx = idx*10 + int(c-'0')
		if idx > maxPlaceholderIndex {
			return 0, false
		}
	}

	return idx, true
}
