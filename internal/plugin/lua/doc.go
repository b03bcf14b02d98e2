// Package lua lets Lua plugin code own hook callbacks.
//
// A State wraps a gopher-lua runtime with only the safe standard libraries
// opened (base, table, string, math). The base functions that load code
// (dofile, loadfile, load, loadstring) are removed. The State acts as the component that
// owns its Lua functions: Callback resolves a global function once and
// returns a hook.Callback whose Fn calls straight into it.
//
// # Declaring bindings from Lua
//
// Expose installs a global "hooks" table bound to a hook.Loader:
//
//	loader := hook.NewLoader()
//
//	state, err := lua.NewState()
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.Expose(loader); err != nil {
//	    return err
//	}
//	if err := state.DoFile("plugin.lua"); err != nil {
//	    return err
//	}
//
// where plugin.lua declares its bindings during setup:
//
//	function setup(title) return title .. "!" end
//
//	hooks.add_filter("init", "setup")
//	hooks.add_action("save_post", function(id, post) end, 5, 2)
//
// The third and fourth arguments are priority and accepted argument count
// and default to 10 and 1.
//
// # Bridge
//
// The Bridge converts values crossing the boundary. Go arguments passed to a
// callback are converted to Lua values; the first Lua return value is
// converted back.
//
// gopher-lua's LState is not goroutine-safe. State serialises Go-side access
// with a mutex. A callback invoked while the same State is already executing
// Lua code, such as a hook fired from inside another hook, returns
// ErrStateBusy.
package lua
