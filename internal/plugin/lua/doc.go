// Package lua runs editing scripts against an engine.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Go-Lua type conversion bridge
//   - Execution timeouts and call limits
//   - The canvas module, which exposes engine edits to scripts
//
// # State
//
//	state := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	defer state.Close()
//	lua.InstallCanvas(state, eng)
//
//	err := state.DoFile(ctx, "tidy.lua")
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. Functions
// that load code (dofile, loadfile, load, require) are removed and print
// writes to the configured output.
//
// # Canvas module
//
// Scripts edit the active page through the global canvas table:
//
//	local a = canvas.create_shape{shape = "ellipse", x = 0, y = 0, width = 40, height = 40}
//	local b = canvas.create_text{text = "Hello", x = 60, y = 0, width = 100, height = 20}
//	canvas.batch("Line up", function()
//	    canvas.align({a, b}, "top")
//	    canvas.set({a, b}, "locked", true)
//	end)
//	canvas.undo()
//
// Every call is recorded in the engine's history, so a script's edits can
// be undone like any other.
package lua
