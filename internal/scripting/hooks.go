// Package scripting wraps a gopher-lua VM for data-driven component
// behavior. HookEngine owns a single VM and exposes the two calls a
// scripted component's on_create/on_destroy hooks trampoline into: one
// goroutine loads a flat directory of .lua files at startup, and every
// later call is protected so a broken script logs and moves on instead of
// crashing the tick loop.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// HookEngine owns one Lua VM. Single-goroutine access only: the world tick
// thread is the only caller.
type HookEngine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewHookEngine creates a Lua VM and loads every .lua file directly under
// scriptsDir -- one flat namespace of on_create/on_destroy handler
// functions, no subdirectory convention.
func NewHookEngine(scriptsDir string, log *zap.Logger) (*HookEngine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &HookEngine{vm: vm, log: log}

	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}
		vm.Close()
		return nil, fmt.Errorf("read scripts dir %s: %w", scriptsDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(scriptsDir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded hook script", zap.String("file", path))
	}
	return e, nil
}

// Close releases the underlying Lua state.
func (e *HookEngine) Close() {
	e.vm.Close()
}

// CallCreate invokes the Lua global "<script>_on_create(entity_id)" if
// present. A missing function is skipped silently; Lua-side errors are
// logged, never propagated.
func (e *HookEngine) CallCreate(script string, entityID uint64) {
	e.call(script+"_on_create", entityID)
}

// CallDestroy invokes the Lua global "<script>_on_destroy(entity_id)" if
// present, with the same fault handling as CallCreate.
func (e *HookEngine) CallDestroy(script string, entityID uint64) {
	e.call(script+"_on_destroy", entityID)
}

func (e *HookEngine) call(fnName string, entityID uint64) {
	fn := e.vm.GetGlobal(fnName)
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(entityID)); err != nil {
		e.log.Error("lua hook error", zap.String("fn", fnName), zap.Error(err))
	}
}
