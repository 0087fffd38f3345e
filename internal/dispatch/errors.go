package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrHostUnavailable is returned when the host cannot supply the compilation. It is fatal for a run.
	ErrHostUnavailable = errors.New("host unavailable")

	// ErrConfiguration is returned for invalid rules, registrations or engine options.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrCallbackFault marks unexpected failures inside a rule callback.
	ErrCallbackFault = errors.New("callback fault")

	// ErrUnknownRule marks diagnostics whose rule id the reporting rule did not declare.
	ErrUnknownRule = errors.New("diagnostic with undeclared rule id")
)

// Fault is an operational failure of a single callback invocation. Faults never abort a run
// and are never mixed into diagnostics.
type Fault struct {
	Rule    string
	Trigger TriggerKind
	Element string
	Err     error
}

func (f Fault) Error() string {
	if f.Element == "" {
		return fmt.Sprintf("rule %s [%s]: %s", f.Rule, f.Trigger, f.Err)
	}
	return fmt.Sprintf("rule %s [%s] on %s: %s", f.Rule, f.Trigger, f.Element, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}
