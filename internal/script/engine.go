package script

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for behavior scripts.
// Single-goroutine access only (the loop drives every call).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file from dir. A
// missing directory is not an error; hosts may run without scripts.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString executes a chunk of Lua source directly. Used by tests and
// host tooling.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasFunction reports whether a global Lua function with the given name
// exists.
func (e *Engine) HasFunction(name string) bool {
	return e.vm.GetGlobal(name).Type() == lua.LTFunction
}

// UpdateContext holds the pre-packed actor state handed to a Lua update
// function.
type UpdateContext struct {
	X, Y float64
	DT   float64 // seconds
}

// UpdateResult carries the new position back from Lua.
type UpdateResult struct {
	X, Y float64
}

// CallUpdate invokes the named global Lua function with an update
// context table and reads back {x=..., y=...}. A missing function or a
// script error leaves the position untouched.
func (e *Engine) CallUpdate(name string, ctx UpdateContext) (UpdateResult, bool) {
	unchanged := UpdateResult{X: ctx.X, Y: ctx.Y}

	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua update function not found", zap.String("function", name))
		return unchanged, false
	}

	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("dt", lua.LNumber(ctx.DT))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua update error", zap.String("function", name), zap.Error(err))
		return unchanged, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua update returned non-table", zap.String("function", name))
		return unchanged, false
	}

	return UpdateResult{
		X: float64(lua.LVAsNumber(rt.RawGetString("x"))),
		Y: float64(lua.LVAsNumber(rt.RawGetString("y"))),
	}, true
}
