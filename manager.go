package msgcmp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pthm/msgcmp/lib/encoding"
)

// entry is one registered component shape, type-erased for storage in the
// tree. The generic glue is captured in closures at registration time.
type entry struct {
	tag   string
	owner *Manager
	codec *codec
	build func(ctx context.Context, vals *Values) (any, error)
	call  func(ctx context.Context, ev *Event, instance any) error
}

// Manager is a node in the registration tree. It owns entries registered
// directly on it, child managers, an ordered hook chain, and an optional
// error handler. The root additionally owns the tree-wide tag index, the
// logger, the sealer and metrics.
//
// Ownership flows strictly root → children → entries. The parent pointer
// is a non-owning back-reference used only to walk upward for hook
// collection and error escalation. Managers never hold references to
// dispatched component instances.
//
// Registration is expected to complete before live events are accepted;
// the root still carries a lock so that rare late registration does not
// race dispatch reads.
type Manager struct {
	name     string // dot-separated qualified name; root is ""
	parent   *Manager
	root     *Manager
	children map[string]*Manager
	entries  map[string]*entry
	hooks    []Hook
	errh     ErrorHandler

	// root only
	mu        sync.RWMutex
	index     map[string]*entry
	logger    *zap.Logger
	sealer    *encoding.Sealer
	marshaler encoding.Marshaler
	sealKey   []byte
	metrics   *dispatchMetrics
}

// Option configures the root manager.
type Option func(*Manager)

// WithLogger sets the logger for dispatch diagnostics. Defaults to a nop
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithSealingKey enables opaque definitions, signing sealed custom ids
// with the given key.
func WithSealingKey(key []byte) Option {
	return func(m *Manager) { m.sealKey = key }
}

// WithMarshaler selects the sealed-payload marshaler. Defaults to msgpack.
func WithMarshaler(mm encoding.Marshaler) Option {
	return func(m *Manager) { m.marshaler = mm }
}

// WithMetrics registers dispatch outcome counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Manager) { m.metrics = newDispatchMetrics(reg) }
}

// NewManager creates a root manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		children: make(map[string]*Manager),
		entries:  make(map[string]*entry),
		index:    make(map[string]*entry),
		logger:   zap.NewNop(),
	}
	m.root = m
	for _, opt := range opts {
		opt(m)
	}
	if m.sealKey != nil {
		m.sealer = encoding.NewSealer(m.sealKey, m.marshaler)
	}
	return m
}

// Name returns the manager's dot-separated qualified name. The root's name
// is the empty string.
func (m *Manager) Name() string { return m.name }

// Get returns the manager at the dot-separated name below m, creating
// missing intermediate managers. Get is idempotent: the same name always
// returns the same node. Get("") returns m itself.
func (m *Manager) Get(name string) *Manager {
	if name == "" {
		return m
	}
	m.root.mu.Lock()
	defer m.root.mu.Unlock()

	node := m
	for _, seg := range strings.Split(name, ".") {
		child, ok := node.children[seg]
		if !ok {
			qualified := seg
			if node.name != "" {
				qualified = node.name + "." + seg
			}
			child = &Manager{
				name:     qualified,
				parent:   node,
				root:     node.root,
				children: make(map[string]*Manager),
				entries:  make(map[string]*entry),
			}
			node.children[seg] = child
		}
		node = child
	}
	return node
}

// Use appends a hook to this manager's chain. Hooks run around every
// callback dispatched through this manager or its descendants, with
// earlier-registered hooks outermost.
func (m *Manager) Use(h Hook) {
	m.hooks = append(m.hooks, h)
}

// OnError sets this manager's error handler. Failures raised by hooks,
// factories or callbacks below this manager are offered to it after any
// closer handler declines them.
func (m *Manager) OnError(h ErrorHandler) {
	m.errh = h
}

// Detach removes the named direct child and its whole subtree, releasing
// every tag they own. In-flight dispatches are unaffected. Returns false
// if no such child exists.
func (m *Manager) Detach(name string) bool {
	m.root.mu.Lock()
	defer m.root.mu.Unlock()

	child, ok := m.children[name]
	if !ok {
		return false
	}
	delete(m.children, name)
	child.parent = nil
	child.dropEntries()
	return true
}

// dropEntries removes the subtree's tags from the root index.
// Caller holds the root lock.
func (m *Manager) dropEntries() {
	for tag := range m.entries {
		delete(m.root.index, tag)
	}
	for _, child := range m.children {
		child.dropEntries()
	}
}

// Unregister removes the entry with the given tag from this manager.
// Returns false if this manager does not own such an entry.
func (m *Manager) Unregister(tag string) bool {
	m.root.mu.Lock()
	defer m.root.mu.Unlock()

	if _, ok := m.entries[tag]; !ok {
		return false
	}
	delete(m.entries, tag)
	delete(m.root.index, tag)
	return true
}

// Tags returns a sorted snapshot of every tag registered anywhere in the
// tree.
func (m *Manager) Tags() []string {
	m.root.mu.RLock()
	defer m.root.mu.RUnlock()

	tags := make([]string, 0, len(m.root.index))
	for tag := range m.root.index {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Count returns the number of entries registered anywhere in the tree.
func (m *Manager) Count() int {
	m.root.mu.RLock()
	defer m.root.mu.RUnlock()
	return len(m.root.index)
}

// chain collects the hook chain for an entry owned by m, ordered outermost
// (root) first.
func (m *Manager) chain() []Hook {
	var nodes []*Manager
	for node := m; node != nil; node = node.parent {
		nodes = append(nodes, node)
	}
	var hooks []Hook
	for i := len(nodes) - 1; i >= 0; i-- {
		hooks = append(hooks, nodes[i].hooks...)
	}
	return hooks
}

// Register installs a definition on a manager. It binds the definition's
// parsers and sealing mode, validates the schema, and claims the tag
// across the whole tree. Validation faults are aggregated so one call
// reports every problem at once.
func Register[C any](m *Manager, def *Definition[C]) error {
	var verr error
	if def.tag == "" {
		verr = multierr.Append(verr, errors.New("empty tag"))
	}
	if strings.ContainsRune(def.tag, encoding.Sep) || strings.ContainsRune(def.tag, encoding.SubSep) {
		verr = multierr.Append(verr, errors.New("tag contains a reserved separator"))
	}
	if strings.HasPrefix(def.tag, string(encoding.SealedPrefix)) && !def.opaque {
		verr = multierr.Append(verr, fmt.Errorf("tag may not start with %q, reserved for sealed ids", string(encoding.SealedPrefix)))
	}
	if def.factory == nil {
		verr = multierr.Append(verr, errors.New("definition has no factory"))
	}
	if def.callback == nil {
		verr = multierr.Append(verr, errors.New("definition has no callback"))
	}
	seen := make(map[string]bool, len(def.fields))
	for _, f := range def.fields {
		if f.name == "" {
			verr = multierr.Append(verr, errors.New("field with empty name"))
		}
		if seen[f.name] {
			verr = multierr.Append(verr, fmt.Errorf("duplicate field %q", f.name))
		}
		seen[f.name] = true
		if f.kind == KindCustomID && f.parser == nil {
			verr = multierr.Append(verr, fmt.Errorf("field %q has no parser", f.name))
		}
	}
	if verr != nil {
		return &RegistrationError{Tag: def.tag, Err: verr}
	}

	root := m.root
	root.mu.Lock()
	defer root.mu.Unlock()

	if _, exists := root.index[def.tag]; exists {
		return &RegistrationError{Tag: def.tag, Err: ErrDuplicateTag}
	}
	var sealer *encoding.Sealer
	if def.opaque {
		if root.sealer == nil {
			return &RegistrationError{Tag: def.tag, Err: ErrNoSealingKey}
		}
		sealer = root.sealer
	}

	c := newCodec(def.tag, def.fields, sealer)
	e := &entry{
		tag:   def.tag,
		owner: m,
		codec: c,
		build: func(ctx context.Context, vals *Values) (any, error) {
			instance, err := def.factory(ctx, vals)
			if err != nil {
				return nil, &ConversionError{Tag: def.tag, Err: err}
			}
			return instance, nil
		},
		call: func(ctx context.Context, ev *Event, instance any) error {
			return def.callback(ctx, ev, instance.(C))
		},
	}
	root.index[def.tag] = e
	m.entries[def.tag] = e
	def.codec = c
	def.owner = m
	return nil
}
