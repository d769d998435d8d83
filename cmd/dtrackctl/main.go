package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/cmdutil"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/create"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/deleteproject"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/read"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/update"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/commands/upload"
	"github.com/venslabs/dtrackctl/cmd/dtrackctl/version"
	"github.com/venslabs/dtrackctl/pkg/envutil"
	"github.com/venslabs/dtrackctl/pkg/outputhandler"
)

var logLevel = new(slog.LevelVar)

func main() {
	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logHandler))
	if err := newRootCommand().Execute(); err != nil {
		// The failed result has already been printed.
		if !errors.Is(err, cmdutil.ErrFailed) {
			slog.Error("Error", "error", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dtrackctl",
		Short:         "Manage SBOMs on a Dependency-Track server",
		Example:       upload.Example(),
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()

	// The debug flag value is determined by: CLI flag > DEBUG env var > default (false)
	flags.Bool("debug", envutil.Bool("DEBUG", false), "debug mode [$DEBUG]")
	flags.String(cmdutil.FlagConfigFile, envutil.String("DTRACK_CONFIG", ""), "Path to config.yaml file [$DTRACK_CONFIG]")
	flags.String(cmdutil.FlagOutputFormat, outputhandler.Auto, fmt.Sprintf("Output format (%v)", outputhandler.Names))

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logLevel.Set(slog.LevelDebug)
		}
		return nil
	}

	cmd.AddCommand(
		read.New(),
		upload.New(),
		create.New(),
		update.New(),
		deleteproject.New(),
	)

	return cmd
}
