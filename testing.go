package msgcmp

import "context"

// Test doubles for exercising hook chains and error escalation. They live
// here rather than in a _test.go file so downstream code can use them to
// test its own components and hooks.

// RecordingHook appends "<label>.enter" / "<label>.exit" markers to a
// shared log, in execution order. Set EnterErr to make Enter fail.
type RecordingHook struct {
	Label    string
	Log      *[]string
	EnterErr error

	// LastOutcome is the outcome passed to the most recent Exit.
	LastOutcome error
}

// Enter implements Hook.
func (h *RecordingHook) Enter(ctx context.Context, ev *Event) error {
	*h.Log = append(*h.Log, h.Label+".enter")
	return h.EnterErr
}

// Exit implements Hook.
func (h *RecordingHook) Exit(ctx context.Context, ev *Event, outcome error) {
	h.LastOutcome = outcome
	*h.Log = append(*h.Log, h.Label+".exit")
}

// CapturingHandler returns an ErrorHandler that appends every offered
// failure to sink and reports it handled when handle is true.
func CapturingHandler(sink *[]error, handle bool) ErrorHandler {
	return func(ctx context.Context, ev *Event, err error) bool {
		*sink = append(*sink, err)
		return handle
	}
}
