// Package main is the entry point for the aicommit CLI application.
// aicommit writes a Conventional Commit message for the staged changes with
// Google Gemini, annotates it with a gitmoji and commits after confirmation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitsage/aicommit/internal/cmd"
	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitInterrupted is the conventional status for a SIGINT-terminated run.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted.")
		return exitInterrupted
	}

	if apperrors.IsVerbose() {
		fmt.Fprint(os.Stderr, apperrors.FormatErrorVerbose(err))
	} else {
		fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
	}
	return apperrors.GetExitCode(err)
}
