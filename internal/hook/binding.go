package hook

// Default binding parameters, matching the host's conventions.
const (
	DefaultPriority     = 10
	DefaultAcceptedArgs = 1
)

// Func is what the host invokes when a hook fires. It receives up to the
// binding's accepted argument count. Filters return the transformed value;
// the value returned by an action is ignored.
type Func func(args ...any) (any, error)

// Kind distinguishes the two binding categories.
type Kind int

const (
	KindAction Kind = iota
	KindFilter
)

// String returns "action" or "filter".
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Callback pairs the component that owns a callback with the method the host
// should invoke on it. Fn is captured when the binding is declared, so no
// name lookup happens at dispatch time.
//
// Component is a non-owning reference; its lifetime belongs to whoever
// created it.
type Callback struct {
	Component any
	Method    string
	Fn        Func
}

// Bind creates a Callback for method on component.
func Bind(component any, method string, fn Func) Callback {
	return Callback{
		Component: component,
		Method:    method,
		Fn:        fn,
	}
}

// Binding is a single deferred hook registration.
type Binding struct {
	Hook         string
	Callback     Callback
	Priority     int
	AcceptedArgs int
}

// BindOption configures a Binding as it is added.
type BindOption func(*Binding)

// WithPriority sets the binding priority. Lower values run earlier.
func WithPriority(priority int) BindOption {
	return func(b *Binding) {
		b.Priority = priority
	}
}

// WithAcceptedArgs sets how many arguments the host passes to the callback.
func WithAcceptedArgs(n int) BindOption {
	return func(b *Binding) {
		b.AcceptedArgs = n
	}
}

// newBinding builds a Binding with defaults applied before opts.
func newBinding(hook string, cb Callback, opts []BindOption) Binding {
	b := Binding{
		Hook:         hook,
		Callback:     cb,
		Priority:     DefaultPriority,
		AcceptedArgs: DefaultAcceptedArgs,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
