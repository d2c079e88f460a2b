package msgcmp

import "context"

// Hook wraps dispatched callbacks with paired enter/exit logic, nesting
// like scoped resource acquisition. Hooks registered on a manager wrap
// every callback dispatched through that manager or its descendants; the
// root's hooks are outermost.
type Hook interface {
	// Enter runs before inner hooks and the callback. Returning an error
	// skips everything further in and routes the error like a callback
	// failure; Exit still runs for every hook already entered.
	Enter(ctx context.Context, ev *Event) error

	// Exit runs with the dispatch outcome (nil on success) after the
	// callback returns. It runs on every exit path, including hook
	// failures, panics and context cancellation.
	Exit(ctx context.Context, ev *Event, outcome error)
}

// HookFuncs adapts plain functions to the Hook interface. Either function
// may be nil.
type HookFuncs struct {
	OnEnter func(ctx context.Context, ev *Event) error
	OnExit  func(ctx context.Context, ev *Event, outcome error)
}

// Enter implements Hook.
func (h HookFuncs) Enter(ctx context.Context, ev *Event) error {
	if h.OnEnter == nil {
		return nil
	}
	return h.OnEnter(ctx, ev)
}

// Exit implements Hook.
func (h HookFuncs) Exit(ctx context.Context, ev *Event, outcome error) {
	if h.OnExit != nil {
		h.OnExit(ctx, ev, outcome)
	}
}

// ErrorHandler handles a failure escalated through the manager tree.
// Returning true marks the failure handled and stops propagation;
// returning false offers it to the parent manager's handler.
type ErrorHandler func(ctx context.Context, ev *Event, err error) bool

// Event carries one inbound interaction through dispatch.
type Event struct {
	// CustomID is the raw identifier delivered by the transport.
	CustomID string
	// Tag is the matched definition tag. Empty until a definition matched.
	Tag string
	// Payload is the opaque transport context delivered with the event.
	// Dispatch never inspects it; it exists for callbacks and hooks.
	Payload any
	// DispatchID correlates log entries and hook activity for this
	// dispatch attempt.
	DispatchID string
	// Manager is the node owning the matched definition.
	Manager *Manager
}
