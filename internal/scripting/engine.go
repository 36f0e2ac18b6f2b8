package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrNoHandler is returned when a behaviour names a Lua global that is not a function.
var ErrNoHandler = errors.New("lua handler not found")

// Engine wraps a single gopher-lua VM for entity behaviour scripts.
// Single-goroutine access only (the simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir:
// core/ first, then behavior/, then the directory itself. An empty
// scriptsDir gives a bare VM.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("vec_len", vm.NewFunction(luaVecLen))

	e := &Engine{vm: vm, log: log}
	if scriptsDir == "" {
		return e, nil
	}
	for _, dir := range []string{
		filepath.Join(scriptsDir, "core"),
		filepath.Join(scriptsDir, "behavior"),
		scriptsDir,
	} {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts %s: %w", dir, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
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

// LoadString runs a chunk of Lua source in the engine's global scope.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// HasFunction reports whether name is a global Lua function.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

func (e *Engine) Close() {
	e.vm.Close()
}

// BehaviorContext is the per-entity state handed to a behaviour function.
type BehaviorContext struct {
	Entity          uint32
	X, Y            float32
	Rotation        float32
	VX, VY          float32
	AngularVelocity float32
	DT              float32
	Time            float64
}

// BehaviorResult carries the fields a behaviour chose to override.
// Nil means "leave as is".
type BehaviorResult struct {
	VX, VY          *float32
	AngularVelocity *float32
	UseGravity      *bool
}

// RunBehavior calls the Lua global name with a context table and reads back
// the optional table it returns. Returning nil is fine and changes nothing.
func (e *Engine) RunBehavior(name string, ctx BehaviorContext) (BehaviorResult, error) {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return BehaviorResult{}, fmt.Errorf("%w: %s", ErrNoHandler, name)
	}

	t := e.vm.NewTable()
	t.RawSetString("entity", lua.LNumber(ctx.Entity))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("rotation", lua.LNumber(ctx.Rotation))
	t.RawSetString("vx", lua.LNumber(ctx.VX))
	t.RawSetString("vy", lua.LNumber(ctx.VY))
	t.RawSetString("angular_velocity", lua.LNumber(ctx.AngularVelocity))
	t.RawSetString("dt", lua.LNumber(ctx.DT))
	t.RawSetString("time", lua.LNumber(ctx.Time))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return BehaviorResult{}, fmt.Errorf("lua %s: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	var res BehaviorResult
	rt, ok := result.(*lua.LTable)
	if !ok {
		if result != lua.LNil {
			return res, fmt.Errorf("lua %s returned %s, want table", name, result.Type())
		}
		return res, nil
	}
	res.VX = numberField(rt, "vx")
	res.VY = numberField(rt, "vy")
	res.AngularVelocity = numberField(rt, "angular_velocity")
	if v := rt.RawGetString("use_gravity"); v != lua.LNil {
		b := lua.LVAsBool(v)
		res.UseGravity = &b
	}
	return res, nil
}

func numberField(t *lua.LTable, key string) *float32 {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return nil
	}
	f := float32(n)
	return &f
}

func luaVecLen(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	L.Push(lua.LNumber(math.Hypot(x, y)))
	return 1
}
