package main

import (
	"context"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/gohost"
	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Check Go packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{"./..."}
		}

		ctx := cmd.Context()
		pkgs, err := gohost.Load(ctx, "", args...)
		if err != nil {
			return err
		}
		s.logger.Debug("packages loaded", zap.Int("count", len(pkgs)))

		total := &dispatch.Result{}
		for _, pkg := range pkgs {
			res, err := s.engine.Run(ctx, goHost(pkg))
			if err != nil {
				return err
			}

			total.Diagnostics = append(total.Diagnostics, res.Diagnostics...)
			total.Faults = append(total.Faults, res.Faults...)
			if res.Cancelled {
				total.Cancelled = true
				break
			}
		}
		slices.SortFunc(total.Diagnostics, lintdiag.Diagnostic.Compare)

		return s.finish(cmd.OutOrStdout(), total)
	},
}

func goHost(pkg gohost.Package) dispatch.Host {
	return dispatch.HostFunc(func(context.Context) (*symbols.Compilation, error) {
		res, err := gohost.Build(pkg)
		if err != nil {
			return nil, err
		}

		return res.Compilation, nil
	})
}
