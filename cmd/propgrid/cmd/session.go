package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/propgrid/cmd/propgrid/internal/config"
	"github.com/go-drift/propgrid/cmd/propgrid/internal/demo"
	"github.com/go-drift/propgrid/pkg/binding"
	"github.com/go-drift/propgrid/pkg/editors"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/layout"
	"github.com/go-drift/propgrid/pkg/model"
	"github.com/go-drift/propgrid/pkg/overlay"
)

// session is a grid bound to a fresh demo object.
type session struct {
	cfg     config.Config
	logger  *zap.Logger
	object  *demo.Speaker
	rows    *layout.Rows
	overlay *overlay.Stack
	grid    *binding.Grid
}

func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	installLogger(logger)

	reg := demo.Registry()
	if cfg.Metadata != "" {
		if err := reg.LoadFile(cfg.Metadata, demo.Samples()...); err != nil {
			return nil, err
		}
	}

	s := &session{
		cfg:     cfg,
		logger:  logger,
		object:  demo.New(),
		rows:    &layout.Rows{},
		overlay: &overlay.Stack{},
	}
	s.grid = binding.NewGrid(s.rows,
		binding.WithResolver(editors.NewResolver(editors.WithOverlay(s.overlay))),
		binding.WithRegistry(reg),
		binding.WithGrouping(cfg.Grouping),
		binding.WithLiveSync(cfg.LiveSync),
	)
	if err := s.grid.Bind(s.object); err != nil {
		return nil, fmt.Errorf("bind demo object: %w", err)
	}
	logger.Debug("session ready", zap.Int("properties", s.grid.Source().Len()), zap.Bool("grouping", cfg.Grouping))
	return s, nil
}

func (s *session) close() {
	s.grid.Close()
	_ = s.logger.Sync()
}

// newLogger builds a console logger on stderr at the named level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)), nil
}

// installLogger routes every package logger and the error handler to l.
func installLogger(l *zap.Logger) {
	model.SetLogger(l.Named("model"))
	editors.SetLogger(l.Named("editors"))
	binding.SetLogger(l.Named("binding"))
	griderrors.SetHandler(&griderrors.LogHandler{Logger: l.Named("errors"), Verbose: l.Core().Enabled(zapcore.DebugLevel)})
}
