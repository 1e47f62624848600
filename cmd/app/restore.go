package main

import (
	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/usecase"
)

func newRestoreCmd(opts *rootOptions, exitCode *int) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Prepare a backup and copy it back into the data directory",
		Long: "Prepare the backup for the given date and copy it back into the MySQL " +
			"data directory. The server must be stopped and the data directory empty.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rt, err := newAppRuntime(cmd.Context(), opts)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer rt.cleanup()
			handleCmdError(exitCode, usecase.Restore(cmd.Context(), rt.cfg, rt.deps, rt.logger, date))
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "date of the backup to restore (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
