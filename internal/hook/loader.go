package hook

import (
	"go.uber.org/zap"
)

// Loader collects action and filter bindings and registers them with a host
// in one batch.
//
// Bindings are only ever appended. Run may be called more than once; each
// call re-submits every binding.
type Loader struct {
	actions []Binding
	filters []Binding

	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used by Run.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates an empty Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		actions: make([]Binding, 0),
		filters: make([]Binding, 0),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddAction queues cb to be registered for action hook.
// Neither hook nor cb is validated; that is left to the host.
func (l *Loader) AddAction(hook string, cb Callback, opts ...BindOption) {
	l.actions = append(l.actions, newBinding(hook, cb, opts))
}

// AddFilter queues cb to be registered for filter hook.
// Neither hook nor cb is validated; that is left to the host.
func (l *Loader) AddFilter(hook string, cb Callback, opts ...BindOption) {
	l.filters = append(l.filters, newBinding(hook, cb, opts))
}

// Actions returns the queued action bindings in insertion order.
// The slice is owned by the Loader and must not be modified.
func (l *Loader) Actions() []Binding {
	return l.actions
}

// Filters returns the queued filter bindings in insertion order.
// The slice is owned by the Loader and must not be modified.
func (l *Loader) Filters() []Binding {
	return l.filters
}

// Len returns the total number of queued bindings.
func (l *Loader) Len() int {
	return len(l.actions) + len(l.filters)
}

// Run registers every queued filter with r, then every queued action, each
// in insertion order.
func (l *Loader) Run(r Registrar) {
	for _, b := range l.filters {
		l.logBinding(KindFilter, b)
		r.AddFilter(b.Hook, b.Callback, b.Priority, b.AcceptedArgs)
	}

	for _, b := range l.actions {
		l.logBinding(KindAction, b)
		r.AddAction(b.Hook, b.Callback, b.Priority, b.AcceptedArgs)
	}

	l.logger.Info("hooks registered",
		zap.Int("filters", len(l.filters)),
		zap.Int("actions", len(l.actions)),
	)
}

func (l *Loader) logBinding(kind Kind, b Binding) {
	l.logger.Debug("registering hook",
		zap.Stringer("kind", kind),
		zap.String("hook", b.Hook),
		zap.String("method", b.Callback.Method),
		zap.Int("priority", b.Priority),
		zap.Int("accepted_args", b.AcceptedArgs),
	)
}
