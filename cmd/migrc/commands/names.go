package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/cmd/migrc/opts"
	"github.com/compiletest/migrc/pkg/directive"
	"github.com/compiletest/migrc/pkg/migrate"
)

// NewNamesCmd creates a new names command
func NewNamesCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "names <corpus-root>",
		Aliases: []string{"collect-directive-names"},
		Short:   "Print the bare directive names known for a corpus",
		Long: `Names builds the directive set the same way migrate does, then derives
the bare directive names (revision brackets, values, and trailing free
text stripped) and prints them sorted, one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "names").Logger().WithContext(cmd.Context())

			root := args[0]
			if _, err := os.Stat(root); err != nil {
				return errors.Errorf("%w: corpus root %q does not exist", migrate.ErrArgument, root)
			}

			sources := directive.DefaultSources(root, ro.Config.Target)
			sources.Overrides = ro.Config.ManualDirectives

			set, err := directive.Collect(ctx, sources)
			if err != nil {
				return errors.Errorf("collecting directives: %w", err)
			}

			names, err := directive.Names(set)
			if err != nil {
				return errors.Errorf("extracting directive names: %w", err)
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	return cmd
}
