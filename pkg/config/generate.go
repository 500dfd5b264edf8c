package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrConfigConflict indicates that config generation was requested but a
// config artifact already exists at the target path.
var ErrConfigConflict = errors.Base("config file already exists")

// defaultConfigText is the artifact `migrc init` emits.
const defaultConfigText = `# migrc configuration
#
# manual_directives are merged into the directive set after automatic
# collection, in the exact raw form they would have been collected in:
#
# manual_directives:
#   - "// run-pass"
#   - "//[rev] edition: 2021"
manual_directives: []

# target selects which build directory collected directives are read from.
target: ` + DefaultTarget + `

# extensions lists the file extensions considered migration candidates.
extensions:
  - .rs

# exclude_globs are patterns (relative to each phase root) left untouched.
exclude_globs: []

# match_mode is "line" (compare whole lines) or "body" (compare trimmed
# comment bodies).
match_mode: line
`

// Generate writes the default config artifact to path. It refuses to touch
// an existing file.
func Generate(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("%w: %s", ErrConfigConflict, path)
	} else if !os.IsNotExist(err) {
		return errors.Errorf("stating %q: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigText), 0o644); err != nil {
		return errors.Errorf("writing config file %q: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("wrote default config")
	return nil
}
