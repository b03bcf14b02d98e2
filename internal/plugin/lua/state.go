package lua

import (
	"fmt"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// State wraps gopher-lua for running plugin code.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	bridge *Bridge
	closed bool

	// running is set while Lua code executes, so a callback fired from
	// inside that execution can fail instead of waiting on mu.
	running atomic.Bool
}

// NewState creates a new Lua state with only the safe libraries opened.
func NewState() (*State, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	openSafeLibraries(L)

	return &State{
		L:      L,
		bridge: NewBridge(L),
	}, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// print, type, pairs, ipairs, pcall, ...
	lua.OpenBase(L)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.

	removeDangerousGlobals(L)
}

// dangerousGlobals are base library functions that load or run code from
// disk or from strings.
var dangerousGlobals = []string{
	"dofile",     // Load and execute file
	"loadfile",   // Load file as function
	"load",       // Load chunk as function
	"loadstring", // Load string as function
}

// removeDangerousGlobals clears the base functions OpenBase installs that
// reach outside the state.
func removeDangerousGlobals(L *lua.LState) {
	for _, name := range dangerousGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.execute(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.execute(func() error {
		return s.L.DoString(code)
	})
}

// execute runs fn with running set. Caller must hold s.mu.
func (s *State) execute(fn func() error) error {
	s.running.Store(true)
	defer s.running.Store(false)

	return doWithRecovery(fn)
}

// doWithRecovery executes fn, turning a panic into an error.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Call calls a global Lua function with Go arguments and returns its results
// as Go values. Returns an empty slice (not nil) if the function returns
// nothing.
func (s *State) Call(name string, args ...any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fn, err := s.lookupFunc(name)
	if err != nil {
		return nil, err
	}

	return s.callRunning(fn, args)
}

// callRunning is call with running set. Caller must hold s.mu.
func (s *State) callRunning(fn *lua.LFunction, args []any) ([]any, error) {
	s.running.Store(true)
	defer s.running.Store(false)

	return s.call(fn, args)
}

// HasFunction returns true if name is a global Lua function.
func (s *State) HasFunction(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	_, err := s.lookupFunc(name)
	return err == nil
}

// GetGlobal returns the Go value of a global Lua variable.
func (s *State) GetGlobal(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	return s.bridge.ToGoValue(s.L.GetGlobal(name))
}

// lookupFunc resolves a global function. Caller must hold s.mu.
func (s *State) lookupFunc(name string) (*lua.LFunction, error) {
	v := s.L.GetGlobal(name)
	if v == lua.LNil {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
	}

	fn, ok := v.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotFunction, name, v.Type())
	}
	return fn, nil
}

// call invokes fn with converted args. Caller must hold s.mu.
func (s *State) call(fn *lua.LFunction, args []any) (results []any, err error) {
	stackTop := s.L.GetTop()

	defer func() {
		if r := recover(); r != nil {
			s.L.SetTop(stackTop)
			results, err = nil, fmt.Errorf("lua panic: %v", r)
		}
	}()

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(s.bridge.ToLuaValue(arg))
	}

	if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
		return nil, err
	}

	// Only the values added by the call.
	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []any{}, nil
	}
	results = make([]any, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.bridge.ToGoValue(s.L.Get(stackTop + i + 1))
	}
	s.L.Pop(nRet)

	return results, nil
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. After Close, operations return ErrStateClosed
// and callbacks bound to the state fail with it.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
