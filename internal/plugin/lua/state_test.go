package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestNewState(t *testing.T) {
	state := newTestState(t)

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
	if state.L == nil {
		t.Error("NewState() L is nil")
	}
}

func TestStateSafeLibraries(t *testing.T) {
	state := newTestState(t)

	tests := []struct {
		name string
		want any
	}{
		{"string", "table"},
		{"table", "table"},
		{"math", "table"},
		{"io", "nil"},
		{"os", "nil"},
		{"debug", "nil"},
		{"dofile", "nil"},
		{"loadfile", "nil"},
		{"load", "nil"},
		{"loadstring", "nil"},
		{"print", "function"},
		{"pcall", "function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := state.DoString(`result = type(` + tt.name + `)`); err != nil {
				t.Fatalf("DoString() error = %v", err)
			}
			if got := state.GetGlobal("result"); got != tt.want {
				t.Errorf("type(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestStateCannotLoadFiles(t *testing.T) {
	state := newTestState(t)

	path := filepath.Join(t.TempDir(), "secret.lua")
	if err := os.WriteFile(path, []byte(`return "SECRET"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		code string
	}{
		{"dofile", `leaked = dofile(` + strconv.Quote(path) + `)`},
		{"loadfile", `leaked = loadfile(` + strconv.Quote(path) + `)()`},
		{"load", `leaked = load(function() return nil end)`},
		{"loadstring", `leaked = loadstring("return 1")()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := state.DoString(tt.code); err == nil {
				t.Errorf("DoString(%s) should fail", tt.name)
			}
			if got := state.GetGlobal("leaked"); got != nil {
				t.Errorf("leaked = %v, want nil", got)
			}
		})
	}
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x"); got != int64(2) {
		t.Errorf("x = %v (%T), want 2", got, got)
	}

	if err := state.DoString(`this is not lua`); err == nil {
		t.Error("DoString() with syntax error should fail")
	}
	if err := state.DoString(`error("boom")`); err == nil {
		t.Error("DoString() with runtime error should fail")
	}
}

func TestStateDoFile(t *testing.T) {
	state := newTestState(t)

	path := filepath.Join(t.TempDir(), "plugin.lua")
	if err := os.WriteFile(path, []byte(`loaded = "yes"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := state.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := state.GetGlobal("loaded"); got != "yes" {
		t.Errorf("loaded = %v, want yes", got)
	}

	if err := state.DoFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("DoFile() on missing file should fail")
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)

	err := state.DoString(`
		function add(a, b) return a + b end
		function pair() return "a", "b" end
		function nothing() end
		function fail() error("nope") end
		notfn = 3
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	results, err := state.Call("add", 2, 3)
	if err != nil {
		t.Fatalf("Call(add) error = %v", err)
	}
	if len(results) != 1 || results[0] != int64(5) {
		t.Errorf("Call(add) = %v, want [5]", results)
	}

	results, err = state.Call("pair")
	if err != nil {
		t.Fatalf("Call(pair) error = %v", err)
	}
	if len(results) != 2 || results[0] != "a" || results[1] != "b" {
		t.Errorf("Call(pair) = %v, want [a b]", results)
	}

	results, err = state.Call("nothing")
	if err != nil {
		t.Fatalf("Call(nothing) error = %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Call(nothing) = %#v, want empty non-nil slice", results)
	}

	if _, err := state.Call("fail"); err == nil {
		t.Error("Call(fail) should return error")
	}
	if _, err := state.Call("missing"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("Call(missing) error = %v, want ErrFunctionNotFound", err)
	}
	if _, err := state.Call("notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(notfn) error = %v, want ErrNotFunction", err)
	}
}

func TestStateCallKeepsStackBalanced(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`function three() return 1, 2, 3 end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	top := state.L.GetTop()
	for i := 0; i < 5; i++ {
		if _, err := state.Call("three"); err != nil {
			t.Fatalf("Call() error = %v", err)
		}
	}
	if got := state.L.GetTop(); got != top {
		t.Errorf("stack top = %d after calls, want %d", got, top)
	}
}

func TestStateHasFunction(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`function f() end; v = 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if !state.HasFunction("f") {
		t.Error("HasFunction(f) = false, want true")
	}
	if state.HasFunction("v") {
		t.Error("HasFunction(v) = true, want false")
	}
	if state.HasFunction("missing") {
		t.Error("HasFunction(missing) = true, want false")
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}

	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := state.DoFile("plugin.lua"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoFile() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if state.HasFunction("f") {
		t.Error("HasFunction() on closed state = true")
	}
	if state.GetGlobal("x") != nil {
		t.Error("GetGlobal() on closed state should be nil")
	}
}
