package gohost

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Load loads and type checks packages matching patterns, relative to dir.
// Packages with errors fail the whole load.
func Load(ctx context.Context, dir string, patterns ...string) ([]Package, error) {
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var errs []error
	res := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		for _, e := range p.Errors {
			errs = append(errs, e)
		}
		res = append(res, Package{
			Fset:  p.Fset,
			Files: p.Syntax,
			Types: p.Types,
			Info:  p.TypesInfo,
		})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("broken packages: %w", errors.Join(errs...))
	}

	return res, nil
}
