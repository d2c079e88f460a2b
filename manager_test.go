package msgcmp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/msgcmp/lib/parser"
)

func noopDef(tag string) *Definition[struct{}] {
	return Define[struct{}](tag).
		Fields(ID("n", parser.Int()).Default(int64(0))).
		Factory(func(ctx context.Context, vals *Values) (struct{}, error) {
			return struct{}{}, nil
		}).
		Callback(func(ctx context.Context, ev *Event, c struct{}) error { return nil })
}

func TestGetCreatesAndReuses(t *testing.T) {
	root := NewManager()

	mgr := root.Get("foo.bar")
	assert.Equal(t, "foo.bar", mgr.Name())
	assert.Equal(t, "", root.Name())

	// Intermediate node was created on demand.
	foo := root.Get("foo")
	assert.Equal(t, "foo", foo.Name())

	// Idempotent: same name, same node.
	assert.Same(t, mgr, root.Get("foo.bar"))
	assert.Same(t, mgr, foo.Get("bar"))
	assert.Same(t, root, root.Get(""))
}

func TestRegisterDuplicateTagTreeWide(t *testing.T) {
	root := NewManager()
	require.NoError(t, Register(root.Get("a"), noopDef("dup")))

	// Same tag under a different branch still collides.
	err := Register(root.Get("b.c"), noopDef("dup"))
	require.ErrorIs(t, err, ErrDuplicateTag)
	assert.True(t, IsRegistrationError(err))
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition[struct{}]
	}{
		{"empty tag", noopDef("")},
		{"separator in tag", noopDef("bad\x1ftag")},
		{"sealed prefix in plain tag", noopDef("!bad")},
		{
			"missing factory",
			Define[struct{}]("nofactory").
				Fields(ID("n", parser.Int())).
				Callback(func(ctx context.Context, ev *Event, c struct{}) error { return nil }),
		},
		{
			"missing callback",
			Define[struct{}]("nocallback").
				Fields(ID("n", parser.Int())).
				Factory(func(ctx context.Context, vals *Values) (struct{}, error) {
					return struct{}{}, nil
				}),
		},
		{
			"field without parser",
			noopDef("noparser").Fields(ID("x", nil)),
		},
		{
			"duplicate field name",
			noopDef("dupfield").Fields(ID("n", parser.Int())),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Register(NewManager(), tt.def)
			require.Error(t, err)
			assert.True(t, IsRegistrationError(err))
		})
	}
}

func TestRegisterAggregatesFaults(t *testing.T) {
	def := Define[struct{}]("").
		Fields(ID("x", nil))
	err := Register(NewManager(), def)
	require.Error(t, err)

	// One call reports every problem: empty tag, no factory, no callback,
	// unparseable field.
	msg := err.Error()
	assert.Contains(t, msg, "empty tag")
	assert.Contains(t, msg, "no factory")
	assert.Contains(t, msg, "no callback")
	assert.Contains(t, msg, `field "x" has no parser`)
}

func TestOpaqueRequiresSealingKey(t *testing.T) {
	err := Register(NewManager(), noopDef("sealed").Opaque())
	require.ErrorIs(t, err, ErrNoSealingKey)
}

func TestUnregister(t *testing.T) {
	root := NewManager()
	mgr := root.Get("a")
	require.NoError(t, Register(mgr, noopDef("gone")))
	assert.Equal(t, 1, root.Count())

	assert.False(t, root.Unregister("gone"), "only the owning manager can unregister")
	assert.True(t, mgr.Unregister("gone"))
	assert.False(t, mgr.Unregister("gone"))
	assert.Equal(t, 0, root.Count())

	// The tag is free again.
	require.NoError(t, Register(mgr, noopDef("gone")))
}

func TestDetachReleasesSubtreeTags(t *testing.T) {
	root := NewManager()
	require.NoError(t, Register(root.Get("games"), noopDef("board")))
	require.NoError(t, Register(root.Get("games.chess"), noopDef("piece")))
	require.NoError(t, Register(root.Get("other"), noopDef("kept")))
	assert.Equal(t, []string{"board", "kept", "piece"}, root.Tags())

	assert.True(t, root.Detach("games"))
	assert.Equal(t, []string{"kept"}, root.Tags())
	assert.Equal(t, 1, root.Count())

	assert.False(t, root.Detach("games"))

	// Detached tags are free for re-registration.
	require.NoError(t, Register(root, noopDef("board")))
}

func TestDispatchAfterDetachIsUnknown(t *testing.T) {
	root := NewManager()
	mgr := root.Get("games")

	invoked := false
	def := Define[struct{}]("board").
		Fields(ID("n", parser.Int()).Default(int64(0))).
		Factory(func(ctx context.Context, vals *Values) (struct{}, error) {
			return struct{}{}, nil
		}).
		Callback(func(ctx context.Context, ev *Event, c struct{}) error {
			invoked = true
			return nil
		})
	require.NoError(t, Register(mgr, def))

	id, err := def.Encode(nil)
	require.NoError(t, err)

	root.Detach("games")
	root.Dispatch(context.Background(), id, nil)
	assert.False(t, invoked)
}

func TestDefinitionManagerBinding(t *testing.T) {
	root := NewManager()
	mgr := root.Get("x.y")
	def := noopDef("bound")
	require.NoError(t, Register(mgr, def))
	assert.Same(t, mgr, def.Manager())
	assert.Equal(t, "bound", def.Tag())
}
