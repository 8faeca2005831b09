package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/object"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that hosts entity object behaviors.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm    *lua.LState
	types *ecs.TypeRegistry
	log   *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory loads nothing.
func NewEngine(scriptsDir string, types *ecs.TypeRegistry, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, types: types, log: log}
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
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

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasClass reports whether a global table named class exists.
func (e *Engine) HasClass(class string) bool {
	_, ok := e.vm.GetGlobal(class).(*lua.LTable)
	return ok
}

// Behavior returns an entity object behavior backed by the Lua table class.
func (e *Engine) Behavior(class string) (object.Behavior, error) {
	tbl, ok := e.vm.GetGlobal(class).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua class %s not found", class)
	}
	return &scriptBehavior{engine: e, name: class, class: tbl}, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
