package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcbrown/clusterback/internal/adapters/config"
	"github.com/dcbrown/clusterback/internal/usecase"
)

func newInitConfigCmd(exitCode *int) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "initconfig",
		Short: "Write a commented starter configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			logger := setupLogger(false)
			if !force {
				if _, err := os.Stat(path); err == nil {
					handleCmdError(exitCode, fmt.Errorf(
						"config file already exists: %s (use --force to overwrite): %w",
						path, usecase.ErrUsage,
					))
					return
				}
			}
			adapter := config.New(logger)
			if err := adapter.Save(cmd.Context(), path, usecase.DefaultConfigFile()); err != nil {
				handleCmdError(exitCode, fmt.Errorf("write config: %v: %w", err, usecase.ErrCritical))
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().StringVar(&path, "path", "clusterback.toml", "where to write the configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
