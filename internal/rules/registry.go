package rules

import (
	"fmt"

	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/lintdiag"
)

// Builtin returns every rule shipped with demolint configured with the given options.
func Builtin(opts Options) ([]dispatch.Rule, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate rule options: %w", err)
	}

	return []dispatch.Rule{
		NewRequireAttribute(opts.InterfaceSuffix, opts.RequiredAttribute),
		NewStaticDisposable(opts.DisposableInterfaceName, opts.CheckAssignments),
	}, nil
}

// Descriptors returns descriptors of the given rules in registration order.
func Descriptors(rules []dispatch.Rule) []*lintdiag.Descriptor {
	var out []*lintdiag.Descriptor
	for _, r := range rules {
		out = append(out, r.SupportedDiagnostics()...)
	}

	return out
}
