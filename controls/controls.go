// Package controls keeps the live control model: one typed holder per
// declared uniform, each mirrored by a binding in a control panel.
package controls

import (
	"github.com/stewi1014/gldither/uniform"
)

// Binding is a panel widget attached to one model entry.
type Binding interface {
	Dispose()
}

// BindingOptions bound the widgets of a scalar or vector binding.
type BindingOptions struct {
	Min, Max, Step float64
}

// DefaultBindingOptions are used for user declared uniforms.
var DefaultBindingOptions = BindingOptions{
	Min:  -1000,
	Max:  1000,
	Step: 0.01,
}

// Panel hosts bindings. Bindings write straight into the value they were
// opened against.
type Panel interface {
	AddBinding(name string, value *uniform.Value, opts BindingOptions) Binding
	Refresh()
}

// Model maps uniform names to their holders, in insertion order.
type Model struct {
	values   map[string]*uniform.Value
	bindings map[string]Binding
	order    []string
}

func NewModel() *Model {
	return &Model{
		values:   make(map[string]*uniform.Value),
		bindings: make(map[string]Binding),
	}
}

// Get returns the holder for name.
func (m *Model) Get(name string) (*uniform.Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Set overwrites the value of an existing entry in place, so its panel
// binding sees the change. It reports whether the entry exists.
func (m *Model) Set(name string, v uniform.Value) bool {
	holder, ok := m.values[name]
	if !ok {
		return false
	}
	*holder = v
	return true
}

// Names returns the model's names in the order they were introduced.
func (m *Model) Names() []string {
	return append([]string(nil), m.order...)
}

func (m *Model) Len() int {
	return len(m.order)
}

// Bound reports whether name has a live panel binding.
func (m *Model) Bound(name string) bool {
	_, ok := m.bindings[name]
	return ok
}

// Reconcile aligns the model and panel with desired. New names get a zero
// holder and a binding, then names no longer declared are disposed and
// removed, then the panel is refreshed once. Existing holders keep their
// value, even when the declared type changed.
func (m *Model) Reconcile(desired []uniform.Descriptor, panel Panel) (added, removed []string) {
	want := make(map[string]bool, len(desired))
	for _, d := range desired {
		want[d.Name] = true
		if _, ok := m.values[d.Name]; ok {
			continue
		}

		v := uniform.Zero(d.Type)
		m.values[d.Name] = &v
		m.order = append(m.order, d.Name)
		m.bindings[d.Name] = panel.AddBinding(d.Name, &v, DefaultBindingOptions)
		added = append(added, d.Name)
	}

	kept := m.order[:0]
	for _, name := range m.order {
		if want[name] {
			kept = append(kept, name)
			continue
		}

		if b := m.bindings[name]; b != nil {
			b.Dispose()
		}
		delete(m.bindings, name)
		delete(m.values, name)
		removed = append(removed, name)
	}
	m.order = kept

	panel.Refresh()
	return added, removed
}
