package main

import (
	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/usecase"
)

func newPrepareCmd(opts *rootOptions, exitCode *int) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare a backup for restoration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt, err := newAppRuntime(cmd.Context(), opts)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer rt.cleanup()
			handleCmdError(exitCode, usecase.PrepareForRestore(cmd.Context(), rt.cfg, rt.deps, rt.logger, date))
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "date of the backup to prepare (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
