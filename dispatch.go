package msgcmp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pthm/msgcmp/lib/encoding"
)

// Dispatch routes one inbound custom id to the matching definition's
// callback: match by tag, decode, reconstruct, invoke with the hook chain,
// escalate any failure to the nearest error handler up the tree.
//
// Dispatch absorbs every failure. Malformed and unknown ids are logged and
// discarded without touching hooks or handlers; callback, hook and factory
// failures walk the handler chain and, if unhandled at the root, are
// logged and swallowed. Nothing ever propagates back to the event loop.
// Each call is one independent attempt; no retry happens internally.
func (m *Manager) Dispatch(ctx context.Context, customID string, payload any) {
	root := m.root
	ev := &Event{
		CustomID:   customID,
		Payload:    payload,
		DispatchID: uuid.NewString(),
	}
	log := root.logger.With(zap.String("dispatch_id", ev.DispatchID))

	tag, tokens, err := root.splitID(customID)
	if err != nil {
		root.metrics.observe(outcomeMalformed)
		log.Warn("discarding malformed custom id", zap.Error(err))
		return
	}
	ev.Tag = tag

	root.mu.RLock()
	e, ok := root.index[tag]
	root.mu.RUnlock()
	if !ok {
		root.metrics.observe(outcomeUnknown)
		log.Warn("discarding custom id with unregistered tag",
			zap.String("tag", tag),
			zap.Error(&UnknownComponentError{Tag: tag}))
		return
	}
	ev.Manager = e.owner

	vals, err := e.codec.decode(tokens)
	if err != nil {
		// Malformed for its matched definition: no valid entry context
		// exists, so handlers are not involved.
		root.metrics.observe(outcomeMalformed)
		log.Warn("discarding malformed custom id", zap.String("tag", tag), zap.Error(err))
		return
	}

	instance, err := safeBuild(ctx, e, vals)
	if err != nil {
		e.owner.escalate(ctx, ev, err)
		return
	}

	hooks := e.owner.chain()
	if err := runChain(ctx, hooks, ev, func(ctx context.Context) error {
		return e.call(ctx, ev, instance)
	}); err != nil {
		e.owner.escalate(ctx, ev, err)
		return
	}
	root.metrics.observe(outcomeOK)
}

// splitID separates a custom id into tag and tokens, routing sealed ids
// through the sealer.
func (m *Manager) splitID(customID string) (string, []string, error) {
	if encoding.IsSealed(customID) {
		if m.sealer == nil {
			return "", nil, ErrNoSealingKey
		}
		return m.sealer.Unseal(customID)
	}
	tag, tokens := encoding.Split(customID)
	return tag, tokens, nil
}

// runChain invokes the callback wrapped by the hook chain, hooks ordered
// outermost first. Enter runs front to back; the callback runs only if
// every Enter succeeded; Exit runs back to front for every hook that was
// entered, regardless of outcome. Panics anywhere are recovered into
// errors so the chain always unwinds.
func runChain(ctx context.Context, hooks []Hook, ev *Event, cb func(context.Context) error) error {
	entered := 0
	var err error
	for _, h := range hooks {
		if err = safeEnter(ctx, h, ev); err != nil {
			break
		}
		entered++
	}
	if err == nil {
		err = safeCall(ctx, cb)
	}
	for i := entered - 1; i >= 0; i-- {
		if exitErr := safeExit(ctx, hooks[i], ev, err); exitErr != nil {
			err = multierr.Append(err, exitErr)
		}
	}
	return err
}

// escalate offers a failure to handlers from m up to the root. The first
// handler returning true stops propagation; a failure that reaches past
// the root is logged as a last-resort diagnostic and swallowed.
func (m *Manager) escalate(ctx context.Context, ev *Event, err error) {
	root := m.root
	for node := m; node != nil; node = node.parent {
		if node.errh == nil {
			continue
		}
		if safeHandle(ctx, node.errh, ev, err) {
			root.metrics.observe(outcomeHandled)
			return
		}
	}
	root.metrics.observe(outcomeUnhandled)
	root.logger.Error("unhandled component dispatch failure",
		zap.String("dispatch_id", ev.DispatchID),
		zap.String("tag", ev.Tag),
		zap.Error(err))
}

func safeBuild(ctx context.Context, e *entry, vals *Values) (instance any, err error) {
	defer recoverTo(&err, "factory")
	return e.build(ctx, vals)
}

func safeEnter(ctx context.Context, h Hook, ev *Event) (err error) {
	defer recoverTo(&err, "hook enter")
	return h.Enter(ctx, ev)
}

func safeExit(ctx context.Context, h Hook, ev *Event, outcome error) (err error) {
	defer recoverTo(&err, "hook exit")
	h.Exit(ctx, ev, outcome)
	return nil
}

func safeCall(ctx context.Context, cb func(context.Context) error) (err error) {
	defer recoverTo(&err, "callback")
	return cb(ctx)
}

func safeHandle(ctx context.Context, h ErrorHandler, ev *Event, cause error) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			// A panicking handler cannot have handled anything.
			handled = false
		}
	}()
	return h(ctx, ev, cause)
}

func recoverTo(err *error, site string) {
	if r := recover(); r != nil {
		var cause error
		if e, ok := r.(error); ok {
			cause = e
		} else {
			cause = errors.New(fmt.Sprint(r))
		}
		*err = fmt.Errorf("msgcmp: %s panicked: %w", site, cause)
	}
}
