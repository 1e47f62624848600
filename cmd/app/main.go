package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	)
	defer stop()

	cmd, exitCode := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return *exitCode
}

// rootOptions carries the persistent flags shared by every operation.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() (*cobra.Command, *int) {
	exitCode := 0
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "clusterback",
		Short:         "Backup and restore tool for Galera MySQL clusters",
		SilenceUsage:  false,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "clusterback.toml", "path to the configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newBackupCmd(opts, &exitCode))
	cmd.AddCommand(newIncrementalCmd(opts, &exitCode))
	cmd.AddCommand(newPrepareCmd(opts, &exitCode))
	cmd.AddCommand(newRestoreCmd(opts, &exitCode))
	cmd.AddCommand(newRotateCmd(opts, &exitCode))
	cmd.AddCommand(newInitConfigCmd(&exitCode))
	cmd.AddCommand(newVersionCmd())

	return cmd, &exitCode
}
