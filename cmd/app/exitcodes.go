package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dcbrown/clusterback/internal/usecase"
)

const (
	exitSuccess        = 0
	exitCriticalError  = 1
	exitUsageError     = 2
	exitPolicyConflict = 3
	exitInterrupted    = 130
)

// handleCmdError prints error to stderr and sets exit code.
func handleCmdError(exitCode *int, err error) {
	if err == nil {
		*exitCode = exitSuccess
		return
	}
	fmt.Fprintln(os.Stderr, err)
	*exitCode = mapExitCode(err)
}

func mapExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, usecase.ErrUsage):
		return exitUsageError
	case errors.Is(err, usecase.ErrConflict):
		return exitPolicyConflict
	case errors.Is(err, usecase.ErrInterrupted):
		return exitInterrupted
	default:
		return exitCriticalError
	}
}
