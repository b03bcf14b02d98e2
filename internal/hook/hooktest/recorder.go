// Package hooktest provides a hook.Registrar that records registrations
// instead of touching a real host.
package hooktest

import "github.com/dshills/hookloader/internal/hook"

// Call is one registration received by a Recorder.
type Call struct {
	Kind         hook.Kind
	Hook         string
	Callback     hook.Callback
	Priority     int
	AcceptedArgs int
}

// Recorder implements hook.Registrar by appending every call it receives.
type Recorder struct {
	calls []Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// AddFilter implements hook.Registrar.
func (r *Recorder) AddFilter(name string, cb hook.Callback, priority, acceptedArgs int) {
	r.record(hook.KindFilter, name, cb, priority, acceptedArgs)
}

// AddAction implements hook.Registrar.
func (r *Recorder) AddAction(name string, cb hook.Callback, priority, acceptedArgs int) {
	r.record(hook.KindAction, name, cb, priority, acceptedArgs)
}

func (r *Recorder) record(kind hook.Kind, name string, cb hook.Callback, priority, acceptedArgs int) {
	r.calls = append(r.calls, Call{
		Kind:         kind,
		Hook:         name,
		Callback:     cb,
		Priority:     priority,
		AcceptedArgs: acceptedArgs,
	})
}

// Calls returns every recorded call in the order received.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Filters returns the recorded filter registrations in order.
func (r *Recorder) Filters() []Call {
	return r.byKind(hook.KindFilter)
}

// Actions returns the recorded action registrations in order.
func (r *Recorder) Actions() []Call {
	return r.byKind(hook.KindAction)
}

func (r *Recorder) byKind(kind hook.Kind) []Call {
	result := make([]Call, 0, len(r.calls))
	for _, c := range r.calls {
		if c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.calls = nil
}
