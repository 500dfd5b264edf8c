package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/cmd/migrc/opts"
	"github.com/compiletest/migrc/pkg/migrate"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		dryRun bool
		phase  string
	)

	cmd := &cobra.Command{
		Use:   "migrate <corpus-root>",
		Short: "Rewrite known directive comments in place",
		Long: `Migrate walks the corpus in two phases (tests/ui first, then the rest of
tests), classifies every comment line against the collected directive set,
and atomically rewrites matching lines from // to //@.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "migrate").Logger().WithContext(cmd.Context())

			ro.UserLogger.Header("compiletest -> ui_test directive migration")

			runnerOpts := migrate.Options{
				CorpusRoot: args[0],
				Config:     ro.Config,
				UserLogger: ro.UserLogger,
				DryRun:     dryRun,
			}
			if dryRun {
				runnerOpts.DiffOutput = cmd.OutOrStdout()
			}
			if phase != "" {
				selected, err := selectPhase(runnerOpts, phase)
				if err != nil {
					return err
				}
				runnerOpts.Phases = selected
			}

			runner, err := migrate.NewRunner(runnerOpts)
			if err != nil {
				return err
			}
			if err := runner.Run(ctx); err != nil {
				return errors.Errorf("migrating corpus: %w", err)
			}

			ro.UserLogger.Success("migration complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview rewrites without touching any file")
	cmd.Flags().StringVar(&phase, "phase", "", "run only the named phase (ui or rest)")

	return cmd
}

// selectPhase restricts the default plan to one named phase.
func selectPhase(o migrate.Options, name string) ([]migrate.Phase, error) {
	for _, p := range migrate.DefaultPhases(o.CorpusRoot, o.Config) {
		if p.Name == name {
			return []migrate.Phase{p}, nil
		}
	}
	return nil, errors.Errorf("%w: unknown phase %q", migrate.ErrArgument, name)
}
