package main

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gtk"
)

// EditorView is a monospace text view reporting every edit of its buffer.
type EditorView struct {
	view      *gtk.TextView
	buffer    *gtk.TextBuffer
	seeding   bool
	callbacks []func(text string)
}

func NewEditorView() (*EditorView, *gtk.ScrolledWindow, error) {
	view, err := gtk.TextViewNew()
	if err != nil {
		return nil, nil, fmt.Errorf("gtk.TextViewNew: %w", err)
	}
	view.SetMonospace(true)
	view.SetWrapMode(gtk.WRAP_NONE)

	buffer, err := view.GetBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("gtk.TextView.GetBuffer: %w", err)
	}

	scrolled, err := gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("gtk.ScrolledWindowNew: %w", err)
	}
	scrolled.SetPolicy(gtk.POLICY_AUTOMATIC, gtk.POLICY_AUTOMATIC)
	scrolled.SetSizeRequest(-1, 280)
	scrolled.Add(view)

	e := &EditorView{
		view:   view,
		buffer: buffer,
	}
	buffer.Connect("changed", e.changed)

	return e, scrolled, nil
}

// UpdateCode replaces the text without notifying listeners.
func (e *EditorView) UpdateCode(text string) {
	e.seeding = true
	defer func() { e.seeding = false }()
	e.buffer.SetText(text)
}

func (e *EditorView) OnUpdate(f func(text string)) {
	e.callbacks = append(e.callbacks, f)
}

func (e *EditorView) changed() {
	if e.seeding {
		return
	}

	start, end := e.buffer.GetBounds()
	text, err := e.buffer.GetText(start, end, true)
	if err != nil {
		log.Println(err)
		return
	}

	for _, f := range e.callbacks {
		f(text)
	}
}
