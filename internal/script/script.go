// Package script embeds a Lua engine for user extensions. Scripts register
// named commands through the `ts` module and may define a global
// menu_items() function contributing extra context menu entries.
package script

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tablestorm/internal/logging"
)

// Item is a script-contributed menu entry.
type Item struct {
	Label   string
	Command string
}

// Engine owns one Lua state. An LState is not safe for concurrent use; all
// entry points serialize on the engine's mutex.
type Engine struct {
	mu       sync.Mutex
	state    *lua.LState
	commands map[string]*lua.LFunction
	log      *logging.Logger
}

// New creates an engine with the ts module installed.
func New(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	e := &Engine{
		state:    lua.NewState(),
		commands: make(map[string]*lua.LFunction),
		log:      log,
	}

	L := e.state
	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(e.register))
	L.SetField(mod, "log", L.NewFunction(e.scriptLog))
	L.SetGlobal("ts", mod)
	return e
}

// LoadFile executes a script file.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// LoadString executes script source.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// MenuItems calls the script's menu_items() function and returns its
// entries. Missing function, call errors, and malformed entries all degrade
// to an empty result.
func (e *Engine) MenuItems() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	L := e.state
	fn := L.GetGlobal("menu_items")
	if fn == lua.LNil {
		return nil
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		e.log.Warnf("menu_items: %v", err)
		return nil
	}
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}
	var items []Item
	for i := 1; ; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			break
		}
		label, _ := entry.RawGetString("label").(lua.LString)
		command, _ := entry.RawGetString("command").(lua.LString)
		if label == "" || command == "" {
			e.log.Warnf("menu_items entry %d missing label or command", i)
			continue
		}
		items = append(items, Item{Label: string(label), Command: string(command)})
	}
	return items
}

// Commands returns the registered command names, sorted.
func (e *Engine) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasCommand reports whether a command is registered.
func (e *Engine) HasCommand(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.commands[name]
	return ok
}

// Invoke runs a registered command with the given arguments. Only string,
// number, and bool argument values cross into Lua; the rest are dropped.
func (e *Engine) Invoke(name string, args map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, ok := e.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	L := e.state
	tbl := L.NewTable()
	for k, v := range args {
		switch val := v.(type) {
		case string:
			L.SetField(tbl, k, lua.LString(val))
		case int:
			L.SetField(tbl, k, lua.LNumber(val))
		case int64:
			L.SetField(tbl, k, lua.LNumber(val))
		case float64:
			L.SetField(tbl, k, lua.LNumber(val))
		case bool:
			L.SetField(tbl, k, lua.LBool(val))
		}
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, tbl); err != nil {
		return fmt.Errorf("command %q: %w", name, err)
	}
	return nil
}

// Close shuts the Lua state down.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Close()
}

// register implements ts.register(name, fn).
func (e *Engine) register(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	e.commands[name] = fn
	e.log.Debugf("script command registered: %s", name)
	return 0
}

// scriptLog implements ts.log(msg).
func (e *Engine) scriptLog(L *lua.LState) int {
	e.log.Infof("script: %s", L.CheckString(1))
	return 0
}
