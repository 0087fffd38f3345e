package dispatch

import (
	"fmt"

	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

// Context is handed to an [Action]. It is scoped to one program element and must not
// be retained after the action returns.
type Context struct {
	run     *run
	rule    *ruleRun
	trigger TriggerKind
	symbol  symbols.View
	node    symbols.Node
}

// Trigger returns the kind of trigger the action was invoked for.
func (c *Context) Trigger() TriggerKind { return c.trigger }

// Symbol returns the triggering symbol. The view is invalid for syntax triggers.
func (c *Context) Symbol() symbols.View { return c.symbol }

// Node returns the triggering syntax element. It is the zero node for symbol triggers.
func (c *Context) Node() symbols.Node { return c.node }

// DeclaredSymbol resolves the member a syntax element declares or, for assignments,
// targets. The view is invalid when the host could not bind it.
func (c *Context) DeclaredSymbol() symbols.View {
	if !c.node.Valid() {
		return symbols.View{}
	}
	return c.ResolveSymbol(c.node.Symbol)
}

// ResolveSymbol looks up a symbol in the compilation.
func (c *Context) ResolveSymbol(id string) symbols.View {
	return c.run.comp.Lookup(id)
}

// ResolveType resolves the declared type of a field or a property.
// It returns an invalid view when member is not a member or its type is not known to the host.
func (c *Context) ResolveType(member symbols.View) symbols.View {
	m := member.AsMember()
	if !m.Valid() {
		return symbols.View{}
	}
	return c.run.comp.Lookup(m.TypeRef()).AsNamedType()
}

// Cancelled reports whether the run was cancelled. Actions must poll it before expensive work
// and return immediately once it is true.
func (c *Context) Cancelled() bool {
	return c.run.ctx.Err() != nil
}

// Report hands the diagnostic to the host. Diagnostics with rule ids the rule did not declare
// are rejected and recorded as faults.
func (c *Context) Report(d lintdiag.Diagnostic) {
	c.run.report(c.rule, c.trigger, c.element(), d)
}

// Fail records an operational failure of the action, like a diagnostic that could not be created.
func (c *Context) Fail(err error) {
	if err == nil {
		return
	}
	c.run.fault(Fault{
		Rule:    c.rule.setup.rule.Name(),
		Trigger: c.trigger,
		Element: c.element(),
		Err:     err,
	})
}

func (c *Context) element() string {
	return describeElement(c.symbol, c.node)
}

func describeElement(symbol symbols.View, node symbols.Node) string {
	switch {
	case symbol.Valid():
		return symbol.ID()
	case node.Valid():
		if node.Symbol != "" {
			return fmt.Sprintf("%s %s at %s", node.Kind, node.Symbol, node.Location)
		}
		return fmt.Sprintf("%s at %s", node.Kind, node.Location)
	default:
		return ""
	}
}

// StartContext is handed to a [StartAction].
type StartContext struct {
	run  *run
	rule *ruleRun

	// closed is guarded by rule.mu.
	closed bool
}

// Compilation returns the compilation being analyzed. Rules can use it to precompute
// compilation-wide data before element callbacks start.
func (c *StartContext) Compilation() *symbols.Compilation {
	return c.run.comp
}

// Cancelled reports whether the run was cancelled.
func (c *StartContext) Cancelled() bool {
	return c.run.ctx.Err() != nil
}

// Register subscribes a compilation-scoped action. It lives for the current run only.
// Registering after the start action returned is a fault.
func (c *StartContext) Register(kind TriggerKind, action Action) {
	name := c.rule.setup.rule.Name()
	if !kind.IsElement() || action == nil {
		c.run.fault(Fault{
			Rule:    name,
			Trigger: kind,
			Err:     fmt.Errorf("%w: invalid registration for %s", ErrCallbackFault, kind),
		})
		return
	}

	if !c.rule.addFrom(c, kind, action) {
		c.run.fault(Fault{
			Rule:    name,
			Trigger: kind,
			Err:     fmt.Errorf("%w: registration after compilation start", ErrCallbackFault),
		})
	}
}

func (c *StartContext) close() {
	c.rule.mu.Lock()
	defer c.rule.mu.Unlock()
	c.closed = true
}
