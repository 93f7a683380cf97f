// Package app wires configuration, logging, the editing engine and the
// script runtime together and manages the application lifecycle.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/canvasedit/internal/config"
	"github.com/dshills/canvasedit/internal/config/watcher"
	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine"
	"github.com/dshills/canvasedit/internal/logging"
	"github.com/dshills/canvasedit/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// InputPath is a JSON document to open. Empty starts a new document.
	InputPath string

	// ScriptPath is a Lua script to run against the document.
	ScriptPath string

	// OutputPath receives the edited document as JSON.
	OutputPath string

	// PDFPath receives the edited document as PDF.
	PDFPath string

	// LogLevel overrides logging.level from the config.
	LogLevel string

	// Watch keeps running and re-applies the script whenever the config
	// file changes.
	Watch bool

	// ReadOnly refuses all edits.
	ReadOnly bool

	// ScriptOutput receives script print output.
	ScriptOutput io.Writer
}

// Application is the central coordinator for all components.
type Application struct {
	mu sync.Mutex

	config *config.Config
	logger *zap.Logger
	engine *engine.Engine
	script *lua.State

	watcher *watcher.Watcher

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once

	opts Options
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	app.logger, err = logging.New(cfg.Logging)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	// 3. Engine
	app.engine = engine.New(
		engine.WithLogger(app.logger),
		engine.WithMaxUndoEntries(cfg.History.MaxEntries),
		engine.WithDuplicateOffset(document.Point(cfg.Edit.DuplicateOffset)),
		engine.WithPasteOffset(document.Point(cfg.Edit.PasteOffset)),
		engine.WithReadOnly(app.opts.ReadOnly),
	)

	// 4. Script runtime
	app.script = app.newScript(cfg)

	// 5. Document
	if err := app.openInput(); err != nil {
		return &InitError{Component: "document", Err: err}
	}

	return nil
}

// newScript builds a Lua state with the script limits of cfg and the canvas
// API bound to the engine.
func (app *Application) newScript(cfg *config.Config) *lua.State {
	state := lua.NewState(
		lua.WithExecutionTimeout(cfg.Script.Timeout),
		lua.WithInstructionLimit(int64(cfg.Script.InstructionLimit)),
		lua.WithOutput(app.opts.ScriptOutput),
		lua.WithLogger(app.logger),
	)
	lua.InstallCanvas(state, app.engine)
	return state
}

// loadConfig resolves the configuration, applying the log level override.
func (app *Application) loadConfig() (*config.Config, error) {
	var opts []config.Option
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(app.opts.ConfigPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openInput loads the input document, or a new one, into the engine.
func (app *Application) openInput() error {
	doc := document.NewDocument(engine.DefaultTitle)
	if app.opts.InputPath != "" {
		var err error
		if doc, err = loadDocument(app.opts.InputPath); err != nil {
			return err
		}
	}
	app.engine.Open(doc)
	return nil
}

// Engine returns the editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run executes the script and writes the outputs. In watch mode it then
// blocks until ctx is cancelled or Shutdown is called, repeating the run
// after every config change.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.process(ctx); err != nil {
		return err
	}
	if !app.opts.Watch {
		return nil
	}

	if app.opts.ConfigPath == "" {
		return ErrWatchNeedsConfig
	}
	w, err := watcher.New(app.opts.ConfigPath, app.loadConfig, watcher.WithLogger(app.logger))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()

	w.OnChange(func(cfg *config.Config) {
		app.applyConfig(cfg)
		if err := app.openInput(); err != nil {
			app.logger.Error("reopening input failed", zap.Error(err))
			return
		}
		if err := app.process(ctx); err != nil {
			app.logger.Error("rerun failed", zap.Error(err))
		}
	})

	app.logger.Info("watching config", zap.String("path", w.Path()))

	select {
	case <-ctx.Done():
	case <-app.done:
	}
	return nil
}

// process runs the script and saves the requested outputs.
func (app *Application) process(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.opts.ScriptPath != "" {
		if err := app.script.DoFile(ctx, app.opts.ScriptPath); err != nil {
			return err
		}
		app.logger.Info("script applied",
			zap.String("script", app.opts.ScriptPath),
			zap.Int("undo_entries", app.engine.UndoCount()))
	}

	doc := app.engine.Document()
	if app.opts.OutputPath != "" {
		if err := saveDocument(app.opts.OutputPath, doc); err != nil {
			return err
		}
	}
	if app.opts.PDFPath != "" {
		if err := savePDF(app.opts.PDFPath, doc); err != nil {
			return err
		}
	}
	return nil
}

// applyConfig installs a reloaded configuration. The script state is
// replaced so new script limits apply to the next run.
func (app *Application) applyConfig(cfg *config.Config) {
	script := app.newScript(cfg)

	app.mu.Lock()
	app.config = cfg
	old := app.script
	app.script = script
	app.mu.Unlock()

	_ = old.Close()

	app.engine.ApplyConfig(cfg)
	app.logger.Info("config applied",
		zap.Int("max_entries", cfg.History.MaxEntries),
		zap.Duration("script_timeout", cfg.Script.Timeout),
		zap.Int("instruction_limit", cfg.Script.InstructionLimit))
}

// Script returns the current script state.
func (app *Application) Script() *lua.State {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.script
}

// Shutdown stops watch mode and releases resources. It is safe to call
// more than once.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)

		app.mu.Lock()
		w := app.watcher
		app.mu.Unlock()
		if w != nil {
			_ = w.Close()
		}

		_ = app.Script().Close()
		_ = app.logger.Sync()
	})
}
