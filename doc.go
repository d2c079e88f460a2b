// Package msgcmp recreates typed, stateful message components purely from
// the bounded custom-id string a remote platform echoes back, with no
// server-side session storage.
//
// A component's state is encoded into the custom id attached to an
// outgoing message. When the remote party interacts with the component,
// the platform delivers the id back; msgcmp matches it to the registered
// definition, decodes the state, rebuilds the component and invokes its
// callback. The id is the only persistence: if it fits in the platform's
// 100-character bound, the component survives restarts for free.
//
// # Core Concepts
//
// A Definition binds a unique tag to an ordered field schema, a factory
// and a callback. Fields are declared with a parser bound up front, so the
// decode path does no type inspection:
//
//	type CountButton struct {
//	    N int64
//	}
//
//	def := msgcmp.Define[*CountButton]("count_button").
//	    Fields(msgcmp.ID("n", parser.Int()).Default(int64(0))).
//	    Factory(func(ctx context.Context, vals *msgcmp.Values) (*CountButton, error) {
//	        return &CountButton{N: vals.Int("n")}, nil
//	    }).
//	    State(func(c *CountButton) (*msgcmp.Values, error) {
//	        return msgcmp.NewValues().Set("n", c.N), nil
//	    }).
//	    Callback(func(ctx context.Context, ev *msgcmp.Event, c *CountButton) error {
//	        c.N++
//	        return nil
//	    })
//
// # Wire Format
//
// Custom ids are positional: the tag, then one token per custom-id field,
// joined on the non-printing separator U+001F. Encoding with n=5 yields
// "count_button\x1f5". Encoding never truncates; an id that would exceed
// the bound fails with EncodeError.
//
// Definitions marked Opaque() instead produce sealed ids: msgpack- or
// CBOR-marshaled state, HMAC-signed and base64-encoded, tamper-proof and
// unreadable to clients at the cost of length headroom.
//
// # Managers, Hooks, Error Handling
//
// Definitions register on a Manager tree addressed by dotted names:
//
//	root := msgcmp.NewManager()
//	mgr := root.Get("game.buttons")
//	err := msgcmp.Register(mgr, def)
//
// Tags are unique across the whole tree. Hooks (Use) wrap every callback
// dispatched at or below their manager with paired Enter/Exit logic, the
// root's hooks outermost; Exit runs on every path, including panics and
// cancellation. Error handlers (OnError) receive failures from the owning
// manager upward until one returns true; failures nobody handles are
// logged and swallowed. Dispatch never lets an error escape back into the
// event loop.
//
// # Dispatch
//
// The transport layer hands the raw id and its opaque event context to the
// root:
//
//	root.Dispatch(ctx, customID, payload)
//
// Malformed or unknown ids are discarded with a log line; they reach no
// hook and no handler. Each Dispatch call is one independent, at-most-once
// attempt.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registration (no init() side effects)
//   - Explicit parsers bound per field (no reflection at decode time)
//   - Explicit lifecycle (Factory in, State out, Callback in between)
//   - Explicit failure taxonomy (malformed input vs stale reference vs
//     handler failure are distinct, and routed differently)
package msgcmp
