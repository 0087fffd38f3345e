package rules

import (
	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/lintdiag"
)

// RequireAttributeDescriptor describes DEMO001.
var RequireAttributeDescriptor = &lintdiag.Descriptor{
	ID:               "DEMO001",
	Title:            "Type is missing a required attribute",
	MessageFormat:    "{0} is missing {2}. Methods in types implementing {1} should be decorated with {2}.",
	Category:         "Conventions",
	Severity:         lintdiag.SeverityWarning,
	EnabledByDefault: true,
	Description: "Types implementing an interface whose name ends with the configured suffix " +
		"must be decorated with the configured attribute.",
}

// RequireAttribute flags named types implementing a marker interface without
// carrying the required attribute.
type RequireAttribute struct {
	suffix    string
	attribute string
}

var _ dispatch.Rule = (*RequireAttribute)(nil)

// NewRequireAttribute creates the rule for interfaces with the given name suffix.
func NewRequireAttribute(suffix, attribute string) *RequireAttribute {
	return &RequireAttribute{
		suffix:    suffix,
		attribute: attribute,
	}
}

func (r *RequireAttribute) Name() string { return "require-attribute" }

func (r *RequireAttribute) SupportedDiagnostics() []*lintdiag.Descriptor {
	return []*lintdiag.Descriptor{RequireAttributeDescriptor}
}

func (r *RequireAttribute) Initialize(reg dispatch.Registrar) {
	reg.RegisterCompilationStart(func(sc *dispatch.StartContext) {
		sc.Register(dispatch.TriggerNamedType, r.checkType)
	})
}

func (r *RequireAttribute) checkType(ctx *dispatch.Context) {
	typ := ctx.Symbol().AsNamedType()

	// Most types do not implement a marker interface, leave them before looking at attributes.
	if _, ok := typ.ImplementsSuffix(r.suffix); !ok {
		return
	}
	if ctx.Cancelled() || typ.HasAttribute(r.attribute) {
		return
	}

	d, err := lintdiag.New(RequireAttributeDescriptor, typ.Location(), typ.Name(), r.suffix, r.attribute)
	if err != nil {
		ctx.Fail(err)
		return
	}
	ctx.Report(d)
}
