package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/cmd/migrc/opts"
	"github.com/compiletest/migrc/pkg/config"
)

// NewInitCmd creates a new init command
func NewInitCmd(ro *opts.RootOpts, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"generate-config"},
		Short:   "Generate a default config file",
		Long:  "Init writes a commented default config artifact. It refuses to\noverwrite an existing one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Generate(cmd.Context(), *configFile); err != nil {
				return errors.Errorf("generating config: %w", err)
			}
			ro.UserLogger.Successf("wrote %s", *configFile)
			return nil
		},
	}

	return cmd
}
