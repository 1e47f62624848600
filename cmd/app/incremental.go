package main

import (
	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/usecase"
)

func newIncrementalCmd(opts *rootOptions, exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "incremental",
		Short: "Perform an incremental backup chained off today's base",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt, err := newAppRuntime(cmd.Context(), opts)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer rt.cleanup()
			handleCmdError(exitCode, usecase.IncrementalBackup(cmd.Context(), rt.cfg, rt.deps, rt.logger))
		},
	}
}
