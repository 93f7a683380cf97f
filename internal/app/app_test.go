package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/canvasedit/internal/config"
	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const moveScript = `
local id = canvas.create_shape{shape="rectangle", x=10, y=10, width=100, height=50}
canvas.move({id}, 5, 5)
print("created", id)
`

func TestNewApplication(t *testing.T) {
	app, err := New(Options{})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.NotNil(t, app.Engine())
	assert.NotNil(t, app.Config())
	assert.Equal(t, 1, app.Engine().Document().PageCount())
	assert.False(t, app.IsRunning())
}

func TestApplication_ShutdownIdempotent(t *testing.T) {
	app, err := New(Options{})
	require.NoError(t, err)

	app.Shutdown()
	app.Shutdown()
	app.Shutdown()
}

func TestApplication_ConfigApplied(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "canvasedit.toml", `
[history]
max_entries = 7
`)

	app, err := New(Options{ConfigPath: cfgPath, ReadOnly: true})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, 7, app.Config().History.MaxEntries)
	assert.Equal(t, 7, app.Engine().MaxUndoEntries())
	assert.True(t, app.Engine().IsReadOnly())
}

func TestApplication_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "canvasedit.yaml", "history:\n  max_entries: 0\n")

	_, err := New(Options{ConfigPath: cfgPath})
	require.Error(t, err)

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "config", initErr.Component)
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestApplication_InvalidLogLevel(t *testing.T) {
	_, err := New(Options{LogLevel: "loud"})
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestApplication_MissingInput(t *testing.T) {
	_, err := New(Options{InputPath: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "open", fileErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplication_RunScriptAndSave(t *testing.T) {
	dir := t.TempDir()
	script := writeTestFile(t, dir, "edit.lua", moveScript)
	out := filepath.Join(dir, "out.json")
	pdf := filepath.Join(dir, "out.pdf")
	var printed bytes.Buffer

	app, err := New(Options{
		ScriptPath:   script,
		OutputPath:   out,
		PDFPath:      pdf,
		ScriptOutput: &printed,
	})
	require.NoError(t, err)
	defer app.Shutdown()

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, 2, app.Engine().UndoCount())
	assert.True(t, strings.HasPrefix(printed.String(), "created\t"))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	doc, err := document.ReadDocument(f)
	require.NoError(t, err)

	page, err := doc.Page(0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.Equal(t, document.NewRect(15, 15, 100, 50), page.At(0).Bounds())

	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestApplication_RunOnInput(t *testing.T) {
	dir := t.TempDir()

	doc := document.NewDocument("Input")
	page, err := doc.Page(0)
	require.NoError(t, err)
	shape := document.NewShape(document.ShapeEllipse, document.NewRect(0, 0, 10, 10))
	page.Add(shape)

	in := filepath.Join(dir, "in.json")
	require.NoError(t, saveDocument(in, doc))

	script := writeTestFile(t, dir, "edit.lua", `
local els = canvas.elements()
canvas.delete({els[1].id})
canvas.undo()
`)
	out := filepath.Join(dir, "out.json")

	app, err := New(Options{InputPath: in, ScriptPath: script, OutputPath: out})
	require.NoError(t, err)
	defer app.Shutdown()

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "Input", app.Engine().Document().Metadata.Title)
	_, ok := app.Engine().Element(shape.ID())
	assert.True(t, ok)
	assert.Equal(t, 1, app.Engine().RedoCount())
}

func TestApplication_ScriptError(t *testing.T) {
	dir := t.TempDir()
	script := writeTestFile(t, dir, "bad.lua", `canvas.move({"missing"}, 1, 1)`)

	app, err := New(Options{ScriptPath: script})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Error(t, app.Run(context.Background()))
	assert.False(t, app.IsRunning())
}

func TestApplication_ReadOnlyScript(t *testing.T) {
	dir := t.TempDir()
	script := writeTestFile(t, dir, "edit.lua", moveScript)

	app, err := New(Options{ScriptPath: script, ReadOnly: true})
	require.NoError(t, err)
	defer app.Shutdown()

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), engine.ErrReadOnly.Error())
}

func TestApplication_WatchNeedsConfig(t *testing.T) {
	app, err := New(Options{Watch: true})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.ErrorIs(t, app.Run(context.Background()), ErrWatchNeedsConfig)
}

func TestApplication_WatchReload(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "canvasedit.toml", "[history]\nmax_entries = 10\n")
	script := writeTestFile(t, dir, "edit.lua", moveScript)

	app, err := New(Options{ConfigPath: cfgPath, ScriptPath: script, Watch: true})
	require.NoError(t, err)
	defer app.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.watcher != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(cfgPath, []byte("[history]\nmax_entries = 3\n"), 0o644))

	assert.Eventually(t, func() bool {
		return app.Engine().MaxUndoEntries() == 3
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApplication_WatchReloadScriptLimits(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "canvasedit.toml", "[script]\ntimeout = \"5s\"\n")

	app, err := New(Options{ConfigPath: cfgPath, Watch: true})
	require.NoError(t, err)
	defer app.Shutdown()
	first := app.Script()
	assert.Equal(t, 5*time.Second, first.ExecutionTimeout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.watcher != nil
	}, 2*time.Second, 10*time.Millisecond)

	reloaded := "[script]\ntimeout = \"250ms\"\ninstruction_limit = 7\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(reloaded), 0o644))

	assert.Eventually(t, func() bool {
		s := app.Script()
		return s.ExecutionTimeout() == 250*time.Millisecond && s.InstructionLimit() == 7 && first.IsClosed()
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApplication_AlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "canvasedit.toml", "")

	app, err := New(Options{ConfigPath: cfgPath, Watch: true})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(context.Background()) }()

	require.Eventually(t, app.IsRunning, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, app.Run(context.Background()), ErrAlreadyRunning)

	app.Shutdown()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestErrors(t *testing.T) {
	inner := errors.New("boom")

	ie := &InitError{Component: "engine", Err: inner}
	assert.Equal(t, "init engine: boom", ie.Error())
	assert.ErrorIs(t, ie, inner)

	fe := &FileError{Op: "save", Path: "/tmp/x.json", Err: inner}
	assert.Equal(t, "save /tmp/x.json: boom", fe.Error())
	assert.ErrorIs(t, fe, inner)
}
