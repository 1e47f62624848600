package main

import (
	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/usecase"
)

func newBackupCmd(opts *rootOptions, exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Perform a full backup",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt, err := newAppRuntime(cmd.Context(), opts)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer rt.cleanup()
			handleCmdError(exitCode, usecase.FullBackup(cmd.Context(), rt.cfg, rt.deps, rt.logger))
		},
	}
}
