package main

import (
	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/usecase"
)

func newRotateCmd(opts *rootOptions, exitCode *int) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Delete backups not retained by the rotation policy",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt, err := newAppRuntime(cmd.Context(), opts)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer rt.cleanup()
			_, err = usecase.Rotate(cmd.Context(), rt.cfg, rt.deps, rt.logger, dryRun)
			handleCmdError(exitCode, err)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the rotation plan without deleting anything")

	return cmd
}
