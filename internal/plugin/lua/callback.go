package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookloader/internal/hook"
)

// Callback resolves the global Lua function name and binds it as a hook
// callback owned by s. The lookup happens now; redefining the global later
// does not change the callback.
func (s *State) Callback(name string) (hook.Callback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return hook.Callback{}, ErrStateClosed
	}

	fn, err := s.lookupFunc(name)
	if err != nil {
		return hook.Callback{}, err
	}

	return s.bind(name, fn), nil
}

// bind wraps fn as a hook.Callback. Fn returns the first Lua result.
func (s *State) bind(method string, fn *lua.LFunction) hook.Callback {
	return hook.Bind(s, method, func(args ...any) (any, error) {
		if s.running.Load() {
			return nil, fmt.Errorf("hook callback %s: %w", method, ErrStateBusy)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return nil, ErrStateClosed
		}

		results, err := s.callRunning(fn, args)
		if err != nil {
			return nil, fmt.Errorf("hook callback %s: %w", method, err)
		}
		if len(results) == 0 {
			return nil, nil
		}
		return results[0], nil
	})
}

// Expose installs the global "hooks" table so Lua code can declare bindings
// into l with hooks.add_action and hooks.add_filter.
func (s *State) Expose(l *hook.Loader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	mod := s.L.NewTable()
	s.L.SetField(mod, "add_action", s.L.NewFunction(s.declare(l.AddAction)))
	s.L.SetField(mod, "add_filter", s.L.NewFunction(s.declare(l.AddFilter)))
	s.L.SetGlobal("hooks", mod)

	return nil
}

// declare returns the Lua function behind hooks.add_action/add_filter:
//
//	hooks.add_xxx(hook, fn_or_name [, priority [, accepted_args]])
//
// It runs inside Lua execution, so s.mu is already held.
func (s *State) declare(add func(string, hook.Callback, ...hook.BindOption)) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)

		var (
			method string
			fn     *lua.LFunction
		)
		switch v := L.Get(2).(type) {
		case *lua.LFunction:
			fn = v
			method = functionName(v)
		case lua.LString:
			resolved, err := s.lookupFunc(string(v))
			if err != nil {
				L.RaiseError("hooks: %s", err.Error())
				return 0
			}
			fn = resolved
			method = string(v)
		default:
			L.ArgError(2, "function or function name expected")
			return 0
		}

		priority := L.OptInt(3, hook.DefaultPriority)
		acceptedArgs := L.OptInt(4, hook.DefaultAcceptedArgs)

		add(name, s.bind(method, fn),
			hook.WithPriority(priority),
			hook.WithAcceptedArgs(acceptedArgs),
		)
		return 0
	}
}

// functionName describes an anonymous function by where it was defined.
func functionName(fn *lua.LFunction) string {
	if fn.Proto == nil {
		return "<go function>"
	}
	return fmt.Sprintf("%s:%d", fn.Proto.SourceName, fn.Proto.LineDefined)
}
