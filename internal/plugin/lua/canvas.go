package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine"
	"github.com/dshills/canvasedit/internal/engine/command"
)

// ModuleName is the global under which the canvas API is installed.
const ModuleName = "canvas"

// Canvas exposes an engine to Lua scripts. Every edit a script makes goes
// through the engine and is undoable.
type Canvas struct {
	eng     *engine.Engine
	state   *State
	bridge  *Bridge
	sandbox *Sandbox
}

// InstallCanvas registers the canvas module on state.
func InstallCanvas(state *State, eng *engine.Engine) *Canvas {
	c := &Canvas{
		eng:     eng,
		state:   state,
		bridge:  NewBridge(state.L),
		sandbox: state.Sandbox(),
	}
	state.RegisterModule(ModuleName, c.funcs())
	return c
}

func (c *Canvas) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"elements":     c.elements,
		"find":         c.find,
		"create_shape": c.createShape,
		"create_text":  c.createText,
		"move":         c.move,
		"resize":       c.resize,
		"delete":       c.delete,
		"duplicate":    c.duplicate,
		"group":        c.group,
		"ungroup":      c.ungroup,
		"set":          c.set,
		"front":        c.reorder(command.BringToFront),
		"back":         c.reorder(command.SendToBack),
		"forward":      c.reorder(command.BringForward),
		"backward":     c.reorder(command.SendBackward),
		"align":        c.align,
		"distribute":   c.distribute,
		"copy":         c.copy,
		"cut":          c.cut,
		"paste":        c.paste,
		"undo":         c.undo,
		"redo":         c.redo,
		"batch":        c.batch,
		"can_undo":     c.canUndo,
		"can_redo":     c.canRedo,
		"checkpoint":   c.checkpoint,
		"revert":       c.revert,
		"replay":       c.replay,
	}
}

// tick counts one canvas call against the instruction limit.
func (c *Canvas) tick(L *lua.LState) {
	if c.sandbox.IncrementInstructions(1) {
		L.RaiseError("%s", ErrInstructionLimit.Error())
	}
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

func (c *Canvas) ids(L *lua.LState, n int) []engine.ElementID {
	list, ok := c.bridge.StringList(L.Get(n))
	if !ok {
		L.ArgError(n, "id or list of ids expected")
	}
	out := make([]engine.ElementID, len(list))
	for i, s := range list {
		id, err := document.ParseElementID(s)
		if err != nil {
			L.ArgError(n, err.Error())
		}
		out[i] = id
	}
	return out
}

func (c *Canvas) id(L *lua.LState, n int) engine.ElementID {
	id, err := document.ParseElementID(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return id
}

func (c *Canvas) pushIDs(L *lua.LState, ids []engine.ElementID) {
	t := L.NewTable()
	for i, id := range ids {
		t.RawSetInt(i+1, lua.LString(id.String()))
	}
	L.Push(t)
}

func (c *Canvas) rect(L *lua.LState, t *lua.LTable) document.Rect {
	x, _ := c.bridge.GetTableNumber(t, "x")
	y, _ := c.bridge.GetTableNumber(t, "y")
	w, okW := c.bridge.GetTableNumber(t, "width")
	h, okH := c.bridge.GetTableNumber(t, "height")
	if !okW || !okH {
		L.RaiseError("width and height are required")
	}
	return document.NewRect(x, y, w, h)
}

func (c *Canvas) color(L *lua.LState, s string) document.Color {
	col, err := document.ParseColor(s)
	check(L, err)
	return col
}

// elementTable describes el as a Lua table.
func (c *Canvas) elementTable(el document.Element) *lua.LTable {
	base := el.Common()
	b := el.Bounds()
	m := map[string]any{
		"id":      el.ID().String(),
		"kind":    el.Kind().String(),
		"name":    base.Name,
		"x":       b.Origin.X,
		"y":       b.Origin.Y,
		"width":   b.Size.Width,
		"height":  b.Size.Height,
		"visible": base.Visible,
		"locked":  base.Locked,
	}
	if z, ok := c.eng.ZOrder(el.ID()); ok {
		m["z"] = z
	}

	switch v := el.(type) {
	case *document.ShapeElement:
		m["shape"] = v.Shape.String()
		m["stroke_width"] = v.StrokeWidth
		if v.Stroke != nil {
			m["stroke"] = v.Stroke.Hex()
		}
		if v.Fill != nil {
			m["fill"] = v.Fill.Hex()
		}
	case *document.TextElement:
		m["text"] = v.Content
		m["font_size"] = v.Style.FontSize
		m["color"] = v.Style.Color.Hex()
	case *document.ImageElement:
		m["source"] = v.Source
	}

	if children := document.Children(el); len(children) > 0 {
		ids := make([]any, len(children))
		for i, ch := range children {
			ids[i] = ch.ID().String()
		}
		m["children"] = ids
	}

	return c.bridge.mapToTable(m)
}

// canvas.elements() -> {element, ...}
func (c *Canvas) elements(L *lua.LState) int {
	c.tick(L)
	t := L.NewTable()
	for i, el := range c.eng.Elements() {
		t.RawSetInt(i+1, c.elementTable(el))
	}
	L.Push(t)
	return 1
}

// canvas.find(id) -> element or nil
func (c *Canvas) find(L *lua.LState) int {
	c.tick(L)
	id, err := document.ParseElementID(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	el, ok := c.eng.Element(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(c.elementTable(el))
	return 1
}

// canvas.create_shape{shape=, x=, y=, width=, height=, fill=, stroke=, stroke_width=, name=} -> id
func (c *Canvas) createShape(L *lua.LState) int {
	c.tick(L)
	t := L.CheckTable(1)

	kind := document.ShapeRectangle
	if s, ok := c.bridge.GetTableString(t, "shape"); ok {
		k, err := document.ParseShapeKind(s)
		check(L, err)
		kind = k
	}

	shape := document.NewShape(kind, c.rect(L, t))
	if s, ok := c.bridge.GetTableString(t, "fill"); ok {
		shape.Fill = document.ColorPtr(c.color(L, s))
	}
	if s, ok := c.bridge.GetTableString(t, "stroke"); ok {
		shape.Stroke = document.ColorPtr(c.color(L, s))
	}
	if w, ok := c.bridge.GetTableNumber(t, "stroke_width"); ok {
		shape.StrokeWidth = w
	}
	if s, ok := c.bridge.GetTableString(t, "name"); ok {
		shape.Name = s
	}

	id, err := c.eng.Create(shape)
	check(L, err)
	L.Push(lua.LString(id.String()))
	return 1
}

// canvas.create_text{text=, x=, y=, width=, height=, font_size=, color=, name=} -> id
func (c *Canvas) createText(L *lua.LState) int {
	c.tick(L)
	t := L.CheckTable(1)

	content, _ := c.bridge.GetTableString(t, "text")
	text := document.NewText(content, c.rect(L, t))
	if size, ok := c.bridge.GetTableNumber(t, "font_size"); ok {
		text.Style.FontSize = size
	}
	if s, ok := c.bridge.GetTableString(t, "color"); ok {
		text.Style.Color = c.color(L, s)
	}
	if s, ok := c.bridge.GetTableString(t, "name"); ok {
		text.Name = s
	}

	id, err := c.eng.Create(text)
	check(L, err)
	L.Push(lua.LString(id.String()))
	return 1
}

// canvas.move(ids, dx, dy)
func (c *Canvas) move(L *lua.LState) int {
	c.tick(L)
	ids := c.ids(L, 1)
	check(L, c.eng.Move(ids, float64(L.CheckNumber(2)), float64(L.CheckNumber(3))))
	return 0
}

// canvas.resize(id, x, y, width, height)
func (c *Canvas) resize(L *lua.LState) int {
	c.tick(L)
	id := c.id(L, 1)
	r := document.NewRect(
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
		float64(L.CheckNumber(4)),
		float64(L.CheckNumber(5)),
	)
	check(L, c.eng.Resize(id, r))
	return 0
}

// canvas.delete(ids)
func (c *Canvas) delete(L *lua.LState) int {
	c.tick(L)
	check(L, c.eng.Delete(c.ids(L, 1)))
	return 0
}

// canvas.duplicate(ids) -> {id, ...}
func (c *Canvas) duplicate(L *lua.LState) int {
	c.tick(L)
	ids, err := c.eng.Duplicate(c.ids(L, 1))
	check(L, err)
	c.pushIDs(L, ids)
	return 1
}

// canvas.group(ids) -> id
func (c *Canvas) group(L *lua.LState) int {
	c.tick(L)
	id, err := c.eng.Group(c.ids(L, 1))
	check(L, err)
	L.Push(lua.LString(id.String()))
	return 1
}

// canvas.ungroup(id) -> {id, ...}
func (c *Canvas) ungroup(L *lua.LState) int {
	c.tick(L)
	ids, err := c.eng.Ungroup(c.id(L, 1))
	check(L, err)
	c.pushIDs(L, ids)
	return 1
}

// canvas.set(ids, property, value)
func (c *Canvas) set(L *lua.LState) int {
	c.tick(L)
	ids := c.ids(L, 1)
	prop, err := command.ParseProperty(L.CheckString(2))
	check(L, err)
	value, err := c.propertyValue(prop, L.Get(3))
	if err != nil {
		L.ArgError(3, err.Error())
	}
	check(L, c.eng.SetProperty(ids, value))
	return 0
}

func (c *Canvas) propertyValue(p command.Property, lv lua.LValue) (command.Value, error) {
	switch p {
	case command.PropStrokeColor, command.PropFillColor:
		var col *document.Color
		if lv != lua.LNil {
			s, ok := lv.(lua.LString)
			if !ok {
				return command.Value{}, fmt.Errorf("%s: color string or nil expected", p)
			}
			parsed, err := document.ParseColor(string(s))
			if err != nil {
				return command.Value{}, err
			}
			col = &parsed
		}
		if p == command.PropFillColor {
			return command.FillColor(col), nil
		}
		return command.StrokeColor(col), nil

	case command.PropTextColor:
		s, ok := lv.(lua.LString)
		if !ok {
			return command.Value{}, fmt.Errorf("%s: color string expected", p)
		}
		col, err := document.ParseColor(string(s))
		if err != nil {
			return command.Value{}, err
		}
		return command.TextColor(col), nil

	case command.PropStrokeWidth, command.PropFontSize:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return command.Value{}, fmt.Errorf("%s: number expected", p)
		}
		if p == command.PropFontSize {
			return command.FontSize(float64(n)), nil
		}
		return command.StrokeWidth(float64(n)), nil

	case command.PropAutoResizeHeight, command.PropVisible, command.PropLocked:
		b, ok := lv.(lua.LBool)
		if !ok {
			return command.Value{}, fmt.Errorf("%s: boolean expected", p)
		}
		switch p {
		case command.PropVisible:
			return command.Visible(bool(b)), nil
		case command.PropLocked:
			return command.Locked(bool(b)), nil
		default:
			return command.AutoResizeHeight(bool(b)), nil
		}

	case command.PropTextContent, command.PropName:
		s, ok := lv.(lua.LString)
		if !ok {
			return command.Value{}, fmt.Errorf("%s: string expected", p)
		}
		if p == command.PropName {
			return command.Name(string(s)), nil
		}
		return command.TextContent(string(s)), nil
	}
	return command.Value{}, fmt.Errorf("%w: %s", command.ErrUnsupportedProperty, p)
}

// canvas.front(id) etc. -> true if the order changed
func (c *Canvas) reorder(op command.ReorderOp) lua.LGFunction {
	return func(L *lua.LState) int {
		c.tick(L)
		err := c.eng.Reorder(c.id(L, 1), op)
		if errors.Is(err, command.ErrNoChange) {
			L.Push(lua.LFalse)
			return 1
		}
		check(L, err)
		L.Push(lua.LTrue)
		return 1
	}
}

// canvas.align(ids, mode)
func (c *Canvas) align(L *lua.LState) int {
	c.tick(L)
	ids := c.ids(L, 1)
	mode, err := command.ParseAlignMode(L.CheckString(2))
	check(L, err)
	check(L, c.eng.Align(ids, mode))
	return 0
}

// canvas.distribute(ids, axis)
func (c *Canvas) distribute(L *lua.LState) int {
	c.tick(L)
	ids := c.ids(L, 1)
	axis, err := command.ParseAxis(L.CheckString(2))
	check(L, err)
	check(L, c.eng.Distribute(ids, axis))
	return 0
}

// canvas.copy(ids) -> count
func (c *Canvas) copy(L *lua.LState) int {
	c.tick(L)
	n, err := c.eng.Copy(c.ids(L, 1))
	check(L, err)
	L.Push(lua.LNumber(n))
	return 1
}

// canvas.cut(ids)
func (c *Canvas) cut(L *lua.LState) int {
	c.tick(L)
	check(L, c.eng.Cut(c.ids(L, 1)))
	return 0
}

// canvas.paste() -> {id, ...}
func (c *Canvas) paste(L *lua.LState) int {
	c.tick(L)
	ids, err := c.eng.Paste()
	check(L, err)
	c.pushIDs(L, ids)
	return 1
}

// canvas.undo() -> description or nil
func (c *Canvas) undo(L *lua.LState) int {
	c.tick(L)
	return c.step(L, c.eng.Undo, engine.ErrNothingToUndo)
}

// canvas.redo() -> description or nil
func (c *Canvas) redo(L *lua.LState) int {
	c.tick(L)
	return c.step(L, c.eng.Redo, engine.ErrNothingToRedo)
}

func (c *Canvas) step(L *lua.LState, fn func() (string, error), empty error) int {
	desc, err := fn()
	if errors.Is(err, empty) {
		L.Push(lua.LNil)
		return 1
	}
	check(L, err)
	L.Push(lua.LString(desc))
	return 1
}

// canvas.batch(label, fn) runs fn as one undo step. An error inside fn
// undoes everything fn did and is raised again.
func (c *Canvas) batch(L *lua.LState) int {
	c.tick(L)
	label := L.CheckString(1)
	fn := L.CheckFunction(2)

	err := c.eng.Transaction(label, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
	check(L, err)
	return 0
}

// canvas.checkpoint() -> checkpoint
func (c *Canvas) checkpoint(L *lua.LState) int {
	c.tick(L)
	ud := L.NewUserData()
	ud.Value = c.eng.Checkpoint()
	L.Push(ud)
	return 1
}

// canvas.revert(checkpoint) undoes every edit made since checkpoint.
func (c *Canvas) revert(L *lua.LState) int {
	c.tick(L)
	check(L, c.eng.RevertTo(c.checkpointArg(L, 1)))
	return 0
}

// canvas.replay(checkpoint) redoes reverted edits up to checkpoint.
func (c *Canvas) replay(L *lua.LState) int {
	c.tick(L)
	check(L, c.eng.ReplayTo(c.checkpointArg(L, 1)))
	return 0
}

func (c *Canvas) checkpointArg(L *lua.LState, n int) engine.Checkpoint {
	ud := L.CheckUserData(n)
	cp, ok := ud.Value.(engine.Checkpoint)
	if !ok {
		L.ArgError(n, "checkpoint expected")
	}
	return cp
}

// canvas.can_undo() -> bool
func (c *Canvas) canUndo(L *lua.LState) int {
	L.Push(lua.LBool(c.eng.CanUndo()))
	return 1
}

// canvas.can_redo() -> bool
func (c *Canvas) canRedo(L *lua.LState) int {
	L.Push(lua.LBool(c.eng.CanRedo()))
	return 1
}
