package dispatch

import (
	"github.com/sirkon/demolint/internal/lintdiag"
)

// Rule is a self-contained check.
type Rule interface {
	// Name returns a human-readable rule name used in logs and faults.
	Name() string

	// SupportedDiagnostics returns every descriptor the rule may report with.
	// Diagnostics with other rule ids are rejected by the engine.
	SupportedDiagnostics() []*lintdiag.Descriptor

	// Initialize registers rule callbacks. It is called once, when the engine is built.
	Initialize(r Registrar)
}

// Action is a callback invoked for a single program element.
type Action func(ctx *Context)

// StartAction is a callback invoked once per analysis run before any element is visited.
type StartAction func(ctx *StartContext)

// Registrar is what a rule uses to subscribe its callbacks.
type Registrar interface {
	// RegisterCompilationStart subscribes to the compilation start. The action can register
	// compilation-scoped element callbacks via [StartContext.Register].
	RegisterCompilationStart(action StartAction)

	// Register subscribes the action to the given element trigger.
	Register(kind TriggerKind, action Action)
}

// Registration binds a trigger kind to a callback.
type Registration struct {
	Kind   TriggerKind
	Action Action
}
