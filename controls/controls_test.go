package controls

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/uniform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinding struct {
	panel *fakePanel
	name  string
}

func (b *fakeBinding) Dispose() {
	delete(b.panel.live, b.name)
	b.panel.disposed = append(b.panel.disposed, b.name)
	b.panel.events = append(b.panel.events, "dispose "+b.name)
}

type fakePanel struct {
	live      map[string]*uniform.Value
	added     []string
	disposed  []string
	refreshes int
	events    []string
}

func newFakePanel() *fakePanel {
	return &fakePanel{live: make(map[string]*uniform.Value)}
}

func (p *fakePanel) AddBinding(name string, value *uniform.Value, opts BindingOptions) Binding {
	p.live[name] = value
	p.added = append(p.added, name)
	p.events = append(p.events, "add "+name)
	return &fakeBinding{panel: p, name: name}
}

func (p *fakePanel) Refresh() {
	p.refreshes++
	p.events = append(p.events, "refresh")
}

func (p *fakePanel) names() []string {
	var names []string
	for name := range p.live {
		names = append(names, name)
	}
	return names
}

func TestReconcileAddsAndRemoves(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()

	added, removed := m.Reconcile(uniform.Introspect("uniform float speed;"), panel)
	assert.Equal(t, []string{"speed"}, added)
	assert.Empty(t, removed)
	v, ok := m.Get("speed")
	require.True(t, ok)
	assert.Equal(t, uniform.Zero(uniform.Float), *v)
	assert.Equal(t, 1, panel.refreshes)

	added, removed = m.Reconcile(uniform.Introspect("uniform float rate;"), panel)
	assert.Equal(t, []string{"rate"}, added)
	assert.Equal(t, []string{"speed"}, removed)
	assert.Equal(t, []string{"speed"}, panel.disposed)
	assert.ElementsMatch(t, []string{"rate"}, panel.names())
	assert.False(t, m.Bound("speed"))
	assert.True(t, m.Bound("rate"))
	assert.Equal(t, 2, panel.refreshes)
}

func TestReconcileOrder(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()

	m.Reconcile(uniform.Introspect("uniform float speed; uniform vec2 offset;"), panel)
	panel.events = nil

	m.Reconcile(uniform.Introspect("uniform float rate; uniform vec3 tint;"), panel)
	assert.Equal(t, []string{
		"add rate",
		"add tint",
		"dispose speed",
		"dispose offset",
		"refresh",
	}, panel.events)
}

func TestReconcileBindingsMatchDeclarations(t *testing.T) {
	sources := []string{
		"",
		"uniform float a; uniform vec2 b;",
		"uniform vec2 b; uniform vec3 c; uniform vec4 d;",
		"uniform float a; uniform float a;",
		"",
	}

	m := NewModel()
	panel := newFakePanel()
	for _, src := range sources {
		desired := uniform.Introspect(src)
		m.Reconcile(desired, panel)
		assert.ElementsMatch(t, uniform.Names(desired), panel.names(), src)
		assert.True(t, slices.Equal(uniform.Names(desired), m.Names()), src)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()
	desired := uniform.Introspect("uniform float a; uniform vec3 tint;")

	m.Reconcile(desired, panel)
	added, removed := m.Reconcile(desired, panel)
	assert.Empty(t, added)
	assert.Empty(t, removed)
	assert.Len(t, panel.added, 2)
}

func TestReconcileRetainsValues(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()

	m.Reconcile(uniform.Introspect("uniform vec3 tint;"), panel)
	panel.live["tint"].SetComponent(0, 0.5)
	panel.live["tint"].SetComponent(2, 1)

	edits := []string{
		"uniform vec3 tint; uniform float x;",
		"uniform float y; uniform vec3 tint;",
		"uniform vec3 tint;",
	}
	for _, src := range edits {
		m.Reconcile(uniform.Introspect(src), panel)
		v, ok := m.Get("tint")
		require.True(t, ok)
		assert.Equal(t, uniform.NewVec3(mgl32.Vec3{0.5, 0, 1}), *v)
	}
}

func TestReconcileKeepsHolderOnTypeChange(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()

	m.Reconcile(uniform.Introspect("uniform float a;"), panel)
	m.Reconcile(uniform.Introspect("uniform vec2 a;"), panel)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, uniform.Float, v.Type())
	assert.Len(t, panel.added, 1)
}

func TestReintroducedNameStartsFresh(t *testing.T) {
	m := NewModel()
	panel := newFakePanel()

	m.Reconcile(uniform.Introspect("uniform float a;"), panel)
	m.Set("a", uniform.NewFloat(3))
	m.Reconcile(nil, panel)
	m.Reconcile(uniform.Introspect("uniform float a;"), panel)

	v, _ := m.Get("a")
	assert.Equal(t, uniform.Zero(uniform.Float), *v)
	assert.Equal(t, []string{"a", "a"}, panel.added)
}

func TestSet(t *testing.T) {
	m := NewModel()
	assert.False(t, m.Set("missing", uniform.NewFloat(1)))

	panel := newFakePanel()
	m.Reconcile(uniform.Introspect("uniform float a;"), panel)
	require.True(t, m.Set("a", uniform.NewFloat(2)))
	assert.Equal(t, uniform.NewFloat(2), *panel.live["a"], "panel sees the same holder")
}
