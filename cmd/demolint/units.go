package main

import (
	"github.com/spf13/cobra"

	"github.com/sirkon/demolint/internal/unitfile"
)

var unitsCmd = &cobra.Command{
	Use:   "units <unit files>",
	Short: "Check pre-resolved compilation units described in YAML files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		res, err := s.engine.Run(cmd.Context(), unitfile.Host{Paths: args})
		if err != nil {
			return err
		}

		return s.finish(cmd.OutOrStdout(), res)
	},
}
