package main

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldither/controls"
	"github.com/stewi1014/gldither/uniform"
)

var _ controls.Panel = (*ConfigWindow)(nil)

// NewConfigWindow opens the control panel: the fragment editor, the render
// controls and one row per declared uniform.
func NewConfigWindow(
	app *gtk.Application,
	quit func(error),
) (*ConfigWindow, error) {
	var err error
	w := &ConfigWindow{
		quit:     quit,
		bindings: make(map[*binding]struct{}),
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	w.SetDefaultSize(420, 700)

	root, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 6)
	if err != nil {
		return nil, fmt.Errorf("gtk.BoxNew: %w", err)
	}
	root.SetMarginStart(8)
	root.SetMarginEnd(8)
	root.SetMarginTop(8)
	root.SetMarginBottom(8)

	for _, box := range []**gtk.Box{&w.editorBox, &w.controlsBox, &w.bindingsBox} {
		*box, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 4)
		if err != nil {
			return nil, fmt.Errorf("gtk.BoxNew: %w", err)
		}
	}
	root.PackStart(w.editorBox, true, true, 0)
	root.PackStart(w.controlsBox, false, false, 0)
	root.PackStart(w.bindingsBox, false, false, 0)

	w.Add(root)
	return w, nil
}

type ConfigWindow struct {
	*gtk.ApplicationWindow
	quit func(error)

	editorBox   *gtk.Box
	controlsBox *gtk.Box
	bindingsBox *gtk.Box

	bindings   map[*binding]struct{}
	refreshing bool
}

type binding struct {
	panel *ConfigWindow
	row   *gtk.Box
	value *uniform.Value
	spins []*gtk.SpinButton
}

func (b *binding) Dispose() {
	delete(b.panel.bindings, b)
	if b.row != nil {
		b.row.Destroy()
	}
}

// AddBinding adds a row of spin buttons, one per component of value. Edits
// write straight into value.
func (w *ConfigWindow) AddBinding(name string, value *uniform.Value, opts controls.BindingOptions) controls.Binding {
	b := &binding{panel: w, value: value}

	row, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 4)
	if err != nil {
		w.quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return b
	}
	b.row = row

	label, _ := gtk.LabelNew(name)
	label.SetWidthChars(12)
	label.SetXAlign(0)
	row.PackStart(label, false, false, 0)

	for i, axis := range value.Axes() {
		if axis != "" {
			axisLabel, _ := gtk.LabelNew(axis)
			row.PackStart(axisLabel, false, false, 0)
		}

		spin, err := gtk.SpinButtonNewWithRange(opts.Min, opts.Max, opts.Step)
		if err != nil {
			w.quit(fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err))
			return b
		}
		spin.SetValue(float64(value.Component(i)))

		component := i
		spin.Connect("value-changed", func() {
			if w.refreshing {
				return
			}
			value.SetComponent(component, float32(spin.GetValue()))
		})

		row.PackStart(spin, true, true, 0)
		b.spins = append(b.spins, spin)
	}

	w.bindingsBox.PackStart(row, false, false, 0)
	row.ShowAll()
	w.bindings[b] = struct{}{}
	return b
}

// Refresh redraws every binding from its value.
func (w *ConfigWindow) Refresh() {
	w.refreshing = true
	defer func() { w.refreshing = false }()

	for b := range w.bindings {
		for i, spin := range b.spins {
			spin.SetValue(float64(b.value.Component(i)))
		}
	}
}

// AddEditor adds the fragment editor at the top of the window.
func (w *ConfigWindow) AddEditor() (*EditorView, error) {
	view, scrolled, err := NewEditorView()
	if err != nil {
		return nil, err
	}
	w.editorBox.PackStart(scrolled, true, true, 0)
	return view, nil
}

// AddLabel adds a line of text above the render controls.
func (w *ConfigWindow) AddLabel(text string) {
	label, err := gtk.LabelNew(text)
	if err != nil {
		return
	}
	label.SetSelectable(true)
	w.editorBox.PackStart(label, false, false, 0)
}

// AddButton adds a button calling onClick.
func (w *ConfigWindow) AddButton(title string, onClick func()) {
	button, err := gtk.ButtonNewWithLabel(title)
	if err != nil {
		w.quit(fmt.Errorf("gtk.ButtonNewWithLabel: %w", err))
		return
	}
	button.Connect("clicked", onClick)
	w.controlsBox.PackStart(button, false, false, 0)
}

// AddChoice adds an enumeration selector.
func (w *ConfigWindow) AddChoice(name string, labels []string, active int, onChange func(int)) {
	combo, err := gtk.ComboBoxTextNew()
	if err != nil {
		w.quit(fmt.Errorf("gtk.ComboBoxTextNew: %w", err))
		return
	}
	for _, l := range labels {
		combo.AppendText(l)
	}
	combo.SetActive(active)
	combo.Connect("changed", func() {
		if i := combo.GetActive(); i >= 0 {
			onChange(i)
		}
	})

	w.controlsBox.PackStart(labelled(name, combo), false, false, 0)
}

// AddSlider adds a horizontal scale.
func (w *ConfigWindow) AddSlider(name string, min, max, step, value float64, onChange func(float64)) {
	scale, err := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, min, max, step)
	if err != nil {
		w.quit(fmt.Errorf("gtk.ScaleNewWithRange: %w", err))
		return
	}
	scale.SetValue(value)
	scale.Connect("value-changed", func() {
		onChange(scale.GetValue())
	})

	w.controlsBox.PackStart(labelled(name, scale), false, false, 0)
}

func labelled(name string, widget gtk.IWidget) *gtk.Box {
	row, _ := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 4)
	label, _ := gtk.LabelNew(name)
	label.SetWidthChars(12)
	label.SetXAlign(0)
	row.PackStart(label, false, false, 0)
	row.PackStart(widget, true, true, 0)
	return row
}
