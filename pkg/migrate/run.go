package migrate

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/pkg/config"
	"github.com/compiletest/migrc/pkg/directive"
	"github.com/compiletest/migrc/pkg/log"
)

// ErrArgument indicates a missing or invalid corpus root argument.
var ErrArgument = errors.Base("invalid argument")

// Phase describes one slice of the corpus, migrated with its own directive
// set. The collection pipeline runs per phase, so phase two may see a
// different set than phase one.
type Phase struct {
	Name string

	// Root is the subtree under the corpus root to walk.
	Root string

	// Excludes are subtrees under the corpus root to skip, typically the
	// roots of earlier phases.
	Excludes []string

	// Sources locates this phase's collected directives. Overrides from
	// config are merged in by the runner.
	Sources directive.Sources
}

// DefaultPhases returns the standard two-phase plan: tests/ui first, then
// the remainder of tests excluding tests/ui. Both phases read the same
// collected-directive output.
func DefaultPhases(corpusRoot string, cfg *config.Config) []Phase {
	sources := directive.DefaultSources(corpusRoot, cfg.Target)
	return []Phase{
		{
			Name:    "ui",
			Root:    filepath.Join("tests", "ui"),
			Sources: sources,
		},
		{
			Name:     "rest",
			Root:     "tests",
			Excludes: []string{filepath.Join("tests", "ui")},
			Sources:  sources,
		},
	}
}

// Options configures a migration run.
type Options struct {
	CorpusRoot string
	Config     *config.Config
	UserLogger *log.Logger

	// DryRun previews rewrites without touching any file.
	DryRun bool

	// DiffOutput receives per-file previews during a dry run. Nil disables
	// diff rendering.
	DiffOutput io.Writer

	// Phases defaults to DefaultPhases when empty.
	Phases []Phase
}

// Runner executes migration phases sequentially, one file fully rewritten
// before the next begins. The first error aborts the whole run; there is no
// per-file skip-and-continue.
type Runner struct {
	opts Options
}

// NewRunner creates a runner after validating the corpus root.
func NewRunner(opts Options) (*Runner, error) {
	if opts.CorpusRoot == "" {
		return nil, errors.Errorf("%w: corpus root is required", ErrArgument)
	}
	info, err := os.Stat(opts.CorpusRoot)
	if err != nil {
		return nil, errors.Errorf("%w: corpus root %q does not exist", ErrArgument, opts.CorpusRoot)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: corpus root %q is not a directory", ErrArgument, opts.CorpusRoot)
	}

	if len(opts.Phases) == 0 {
		opts.Phases = DefaultPhases(opts.CorpusRoot, opts.Config)
	}
	return &Runner{opts: opts}, nil
}

// Run executes every phase in order.
func (r *Runner) Run(ctx context.Context) error {
	for _, phase := range r.opts.Phases {
		if err := r.runPhase(ctx, phase); err != nil {
			return errors.Errorf("phase %q: %w", phase.Name, err)
		}
	}
	return nil
}

// runPhase collects the phase's directive set, enumerates its candidates,
// and migrates them in lexicographic order.
func (r *Runner) runPhase(ctx context.Context, phase Phase) error {
	logger := zerolog.Ctx(ctx)
	user := r.opts.UserLogger

	sources := phase.Sources
	sources.Overrides = append(sources.Overrides, r.opts.Config.ManualDirectives...)

	set, err := directive.Collect(ctx, sources)
	if err != nil {
		return errors.Errorf("collecting directives: %w", err)
	}
	user.Infof("%d known directives", set.Len())

	mode := directive.MatchFullLine
	if r.opts.Config.MatchMode == "body" {
		mode = directive.MatchBody
	}
	cls := directive.NewClassifier(set, mode)

	root := filepath.Join(r.opts.CorpusRoot, phase.Root)
	excludes := make([]string, 0, len(phase.Excludes))
	for _, ex := range phase.Excludes {
		excludes = append(excludes, filepath.Join(r.opts.CorpusRoot, ex))
	}

	files, err := Walk(root, WalkOptions{
		Extensions:      r.opts.Config.Extensions,
		ExcludeSubtrees: excludes,
		ExcludeGlobs:    r.opts.Config.ExcludeGlobs,
	})
	if err != nil {
		return err
	}

	user.StartPhase(ctx, log.PhaseOperation{Name: phase.Name, Root: phase.Root, Files: len(files)})
	defer user.EndPhase(ctx, phase.Name)

	for _, path := range files {
		rel, relErr := filepath.Rel(r.opts.CorpusRoot, path)
		if relErr != nil {
			rel = path
		}

		var res FileResult
		if r.opts.DryRun {
			var preview []byte
			res, preview, err = PreviewFile(ctx, path, cls)
			if err == nil && res.Rewritten > 0 && r.opts.DiffOutput != nil {
				err = writeDiff(r.opts.DiffOutput, rel, path, preview)
			}
		} else {
			res, err = MigrateFile(ctx, path, cls)
		}
		if err != nil {
			return errors.Errorf("migrating %q: %w", path, err)
		}

		user.LogFileOperation(ctx, log.FileOperation{
			Path:      rel,
			Lines:     res.Lines,
			Rewritten: res.Rewritten,
			DryRun:    r.opts.DryRun,
		})
	}

	logger.Info().Str("phase", phase.Name).Int("files", len(files)).Msg("phase complete")
	return nil
}
