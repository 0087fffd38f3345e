package rules

import (
	"fmt"
	"strings"

	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

// StaticDisposableID is the id of the static disposable rule.
const StaticDisposableID = "DEMO002"

// StaticDisposableDescriptor describes DEMO002 for the default disposable interface.
var StaticDisposableDescriptor = newStaticDisposableDescriptor(DefaultDisposableInterfaceName)

var templateEscaper = strings.NewReplacer("{", "{{", "}", "}}")

func newStaticDisposableDescriptor(iface string) *lintdiag.Descriptor {
	return &lintdiag.Descriptor{
		ID:               StaticDisposableID,
		Title:            fmt.Sprintf("%s assigned to static member", iface),
		MessageFormat:    "{0}, which implements " + templateEscaper.Replace(iface) + ", is assigned to a static member",
		Category:         "Reliability",
		Severity:         lintdiag.SeverityWarning,
		EnabledByDefault: true,
		Description: fmt.Sprintf(
			"%s references are not released when assigned to static members: static storage outlives "+
				"scope-based release, so the resource is never released deterministically.",
			iface,
		),
	}
}

// StaticDisposable flags static fields and properties whose declared type implements
// the disposable interface.
type StaticDisposable struct {
	iface            string
	checkAssignments bool
	desc             *lintdiag.Descriptor
}

var _ dispatch.Rule = (*StaticDisposable)(nil)

// NewStaticDisposable creates the rule for the given disposable interface name. With checkAssignments
// the rule also looks at assignments into static members made after their declaration.
func NewStaticDisposable(iface string, checkAssignments bool) *StaticDisposable {
	desc := StaticDisposableDescriptor
	if iface != DefaultDisposableInterfaceName {
		desc = newStaticDisposableDescriptor(iface)
	}

	return &StaticDisposable{
		iface:            iface,
		checkAssignments: checkAssignments,
		desc:             desc,
	}
}

func (r *StaticDisposable) Name() string { return "static-disposable" }

func (r *StaticDisposable) SupportedDiagnostics() []*lintdiag.Descriptor {
	return []*lintdiag.Descriptor{r.desc}
}

func (r *StaticDisposable) Initialize(reg dispatch.Registrar) {
	reg.Register(dispatch.TriggerFieldDeclaration, r.checkDeclaration)
	reg.Register(dispatch.TriggerPropertyDeclaration, r.checkDeclaration)
	if r.checkAssignments {
		reg.Register(dispatch.TriggerAssignmentExpression, r.checkAssignment)
	}
}

func (r *StaticDisposable) checkDeclaration(ctx *dispatch.Context) {
	node := ctx.Node()
	if !node.Static {
		return
	}

	r.checkMember(ctx, ctx.DeclaredSymbol(), node.Location)
}

func (r *StaticDisposable) checkAssignment(ctx *dispatch.Context) {
	r.checkMember(ctx, ctx.DeclaredSymbol(), ctx.Node().Location)
}

func (r *StaticDisposable) checkMember(ctx *dispatch.Context, member symbols.View, loc lintdiag.Location) {
	if !r.isStaticDisposable(ctx, member) {
		return
	}

	d, err := lintdiag.New(r.desc, loc, member.Name())
	if err != nil {
		ctx.Fail(err)
		return
	}
	ctx.Report(d)
}

// isStaticDisposable checks the member is static and its declared type implements the disposable interface.
func (r *StaticDisposable) isStaticDisposable(ctx *dispatch.Context, member symbols.View) bool {
	m := member.AsMember()
	if !m.IsStatic() || ctx.Cancelled() {
		return false
	}

	return ctx.ResolveType(m).Implements(r.iface)
}
