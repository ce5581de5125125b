// Package pipeline owns the live shader state: the control model, the render
// settings and the current compiled program, and drives them from editor and
// panel requests.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/controls"
	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/shader"
	"github.com/stewi1014/gldither/uniform"
)

// State is the pipeline's rebuild state.
type State int

const (
	Idle State = iota
	Rebuilding
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rebuilding:
		return "rebuilding"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var clearColour = mgl32.Vec4{0, 0, 0, 1}

// Pipeline ties the control model, panel and runtime together. Every method
// except Post must be called from the one goroutine that renders.
type Pipeline struct {
	runtime Runtime
	panel   controls.Panel
	model   *controls.Model

	settings Settings
	coeffs   palette.Coefficients
	source   string

	draw     shader.DrawFunc
	state    State
	degraded bool

	mu      sync.Mutex
	pending []Request
}

// New returns an idle pipeline. An unparsable palette selection falls back
// to catalog entry 0.
func New(runtime Runtime, panel controls.Panel, settings Settings) *Pipeline {
	settings.Resolution = ClampResolution(settings.Resolution)

	coeffs, err := palette.Get(settings.Palette)
	if err != nil {
		logger().Warn("palette unavailable, using default", slog.Int("palette", settings.Palette), slog.Any("err", err))
		settings.Palette = 0
		coeffs, _ = palette.Get(0)
	}

	return &Pipeline{
		runtime:  runtime,
		panel:    panel,
		model:    controls.NewModel(),
		settings: settings,
		coeffs:   coeffs,
	}
}

// Start builds the first program from source. There is no earlier program to
// fall back on, so a failure here is returned to the caller.
func (p *Pipeline) Start(source string) error {
	if p.state != Idle {
		return fmt.Errorf("pipeline already started")
	}

	p.source = source
	if err := p.rebuild(true); err != nil {
		p.state = Idle
		return err
	}

	logger().Info("pipeline started", slog.Int("uniforms", p.model.Len()))
	return nil
}

// Post queues r. It is safe to call from any goroutine; the request is
// applied by the next Flush or Frame.
func (p *Pipeline) Post(r Request) {
	p.mu.Lock()
	p.pending = append(p.pending, r)
	p.mu.Unlock()
}

// Flush applies every queued request in order. Request errors are logged and
// dropped: the previous program stays active.
func (p *Pipeline) Flush() {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, r := range pending {
		if err := r.apply(p); err != nil {
			logger().Debug("request failed, keeping previous program", slog.String("request", fmt.Sprintf("%T", r)), slog.Any("err", err))
		}
	}
}

// Frame applies queued requests, clears the canvas and draws the current
// program.
func (p *Pipeline) Frame() error {
	p.Flush()
	p.runtime.Clear(clearColour)

	if p.draw == nil {
		return ErrNotStarted
	}
	return p.draw(p.Params())
}

// Params marshals the control model into draw parameters.
func (p *Pipeline) Params() shader.Params {
	params := make(shader.Params, p.model.Len()+1)
	for _, name := range p.model.Names() {
		v, _ := p.model.Get(name)
		if v == nil {
			params[name] = nil
			continue
		}

		m, err := v.Marshal()
		if err != nil {
			logger().Warn("skipping uniform", slog.String("name", name), slog.Any("err", err))
			continue
		}
		params[name] = m
	}

	params[shader.ResolutionUniform] = p.settings.GridSize()
	return params
}

// rebuild reconciles the model against the current source and swaps in a
// freshly compiled program.
func (p *Pipeline) rebuild(reconcile bool) error {
	p.state = Rebuilding
	defer func() { p.state = Running }()

	if reconcile {
		desired := uniform.Introspect(p.source)
		added, removed := p.model.Reconcile(desired, p.panel)
		if len(added) > 0 || len(removed) > 0 {
			logger().Debug("reconciled uniforms", slog.Any("added", added), slog.Any("removed", removed))
		}
	}

	desc := shader.Assemble(p.source, p.coeffs, p.model.Names())
	draw, err := p.runtime.Compile(desc)
	if err != nil {
		p.degraded = p.draw != nil
		return &AssemblyError{Err: err}
	}

	p.draw = draw
	p.degraded = false
	return nil
}

func (p *Pipeline) edit(source string) error {
	if p.state == Idle {
		return ErrNotStarted
	}
	p.source = source
	return p.rebuild(true)
}

func (p *Pipeline) selectPalette(index int) error {
	coeffs, err := palette.Get(index)
	if err != nil {
		var perr *palette.ParseError
		if errors.As(err, &perr) {
			logger().Warn("palette does not parse, keeping previous", slog.Int("palette", index), slog.Any("err", err))
		}
		return err
	}

	p.settings.Palette = index
	p.coeffs = coeffs
	if p.state == Idle {
		return nil
	}
	return p.rebuild(false)
}

func (p *Pipeline) setResolution(level int) {
	p.settings.Resolution = ClampResolution(level)
}

func (p *Pipeline) Model() *controls.Model { return p.model }

func (p *Pipeline) Settings() Settings { return p.settings }

func (p *Pipeline) Coefficients() palette.Coefficients { return p.coeffs }

func (p *Pipeline) Source() string { return p.source }

func (p *Pipeline) State() State { return p.state }

// Degraded reports whether the latest rebuild failed and an older program is
// still being drawn.
func (p *Pipeline) Degraded() bool { return p.degraded }
