package pipeline

// Editor is a source of fragment text.
type Editor interface {
	// UpdateCode seeds the editor's content without notifying listeners.
	UpdateCode(text string)
	// OnUpdate registers a callback invoked on each user edit.
	OnUpdate(func(text string))
}

// AttachEditor seeds editor with the pipeline's source and posts an Edit for
// every update it reports.
func (p *Pipeline) AttachEditor(editor Editor) {
	editor.UpdateCode(p.Source())
	editor.OnUpdate(func(text string) {
		p.Post(Edit{Source: text})
	})
}
