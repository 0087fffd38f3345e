package main

import (
	"github.com/spf13/cobra"

	"github.com/sirkon/demolint/internal/render"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rules with their configured states",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer func() { _ = s.logger.Sync() }()

		return render.Descriptors(cmd.OutOrStdout(), s.engine.SupportedDiagnostics(), s.engine.Enabled)
	},
}
