package dispatch

import (
	"context"

	"github.com/sirkon/demolint/internal/symbols"
)

// Host supplies an already parsed and resolved compilation.
type Host interface {
	Compilation(ctx context.Context) (*symbols.Compilation, error)
}

// HostFunc adapts a function to the [Host] interface.
type HostFunc func(ctx context.Context) (*symbols.Compilation, error)

func (f HostFunc) Compilation(ctx context.Context) (*symbols.Compilation, error) {
	return f(ctx)
}

// StaticHost returns a host always supplying the given compilation.
func StaticHost(c *symbols.Compilation) Host {
	return HostFunc(func(context.Context) (*symbols.Compilation, error) {
		return c, nil
	})
}
