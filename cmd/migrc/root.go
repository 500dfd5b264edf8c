package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/compiletest/migrc/cmd/migrc/commands"
	"github.com/compiletest/migrc/cmd/migrc/opts"
	migrclog "github.com/compiletest/migrc/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
)

// NewRootCmd builds the migrc command tree.
func NewRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "migrc",
		Short:         "Migrate legacy directive comments to explicit //@ directives",
		Long:          "migrc rewrites test-corpus comment lines that match known directives\nfrom the legacy `// directive` form to the explicit `//@ directive` form,\nleaving prose comments untouched.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			ro.UserLogger = migrclog.New(cmd.OutOrStdout(), level)

			return ro.Init(cmd.Context(), configFile)
		},
	}

	addRootFlags(cmd)
	cmd.AddCommand(
		commands.NewMigrateCmd(ro),
		commands.NewNamesCmd(ro),
		commands.NewInitCmd(ro, &configFile),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".migrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
