package pipeline

// Request is a change to the pipeline, applied in order by the rendering
// goroutine.
type Request interface {
	apply(p *Pipeline) error
}

// Edit replaces the fragment source.
type Edit struct {
	Source string
}

// SelectPalette switches to palette.Catalog[Index].
type SelectPalette struct {
	Index int
}

// SetResolution changes the pixel grid to 2^Level. It does not rebuild the
// program.
type SetResolution struct {
	Level int
}

func (r Edit) apply(p *Pipeline) error { return p.edit(r.Source) }

func (r SelectPalette) apply(p *Pipeline) error { return p.selectPalette(r.Index) }

func (r SetResolution) apply(p *Pipeline) error {
	p.setResolution(r.Level)
	return nil
}
