package opts

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/pkg/config"
	"github.com/compiletest/migrc/pkg/log"
)

// RootOpts carries the dependencies shared by every subcommand.
type RootOpts struct {
	Config     *config.Config
	UserLogger *log.Logger
}

// Init loads the configuration and prepares shared state. It runs once,
// after flag parsing, before any subcommand.
func (o *RootOpts) Init(ctx context.Context, configPath string) error {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg
	return nil
}
