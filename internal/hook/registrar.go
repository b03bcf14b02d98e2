package hook

// Registrar is the host's hook dispatcher as seen by a Loader. It has one
// entry point per binding category.
//
// Implementations own the host's dispatch tables. A Loader never checks the
// outcome of a registration; whatever the Registrar does on failure,
// including panicking, is what the caller of Run observes.
type Registrar interface {
	// AddFilter registers cb to run when filter hook is applied.
	AddFilter(hook string, cb Callback, priority, acceptedArgs int)

	// AddAction registers cb to run when action hook fires.
	AddAction(hook string, cb Callback, priority, acceptedArgs int)
}

// RegistrarFuncs adapts two plain functions to the Registrar interface.
// A nil field drops registrations of that kind.
type RegistrarFuncs struct {
	Filter func(hook string, cb Callback, priority, acceptedArgs int)
	Action func(hook string, cb Callback, priority, acceptedArgs int)
}

// AddFilter calls f.Filter.
func (f RegistrarFuncs) AddFilter(hook string, cb Callback, priority, acceptedArgs int) {
	if f.Filter != nil {
		f.Filter(hook, cb, priority, acceptedArgs)
	}
}

// AddAction calls f.Action.
func (f RegistrarFuncs) AddAction(hook string, cb Callback, priority, acceptedArgs int) {
	if f.Action != nil {
		f.Action(hook, cb, priority, acceptedArgs)
	}
}
