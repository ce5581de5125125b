package main

import (
	"fmt"
	"image"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gotk3/gotk3/glib"
	"github.com/stewi1014/gldither/glrender"
	"github.com/stewi1014/gldither/pipeline"
)

// frameInterval is the animation tick in milliseconds.
const frameInterval = 16

const renderTitle = "gldither render"

// NewRenderWindow opens the canvas: a glfw window with an OpenGL ES 3
// context, current on the calling thread.
func NewRenderWindow(width, height int, quit func(error)) (*RenderWindow, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	window, err := glfw.CreateWindow(
		width,
		height,
		renderTitle,
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &RenderWindow{
		Window: window,
		quit:   quit,
	}
	w.MakeContextCurrent()

	return w, nil
}

// RenderWindow drives frames from the GTK main loop, so drawing never runs
// concurrently with editor or panel callbacks.
type RenderWindow struct {
	*glfw.Window
	quit func(error)

	pipeline *pipeline.Pipeline
	gles     *glrender.Runtime
	captures []func(*image.NRGBA)
	lastErr  string
	degraded bool
	stopped  bool
}

// Run sizes the viewport to the framebuffer and starts the animation tick.
func (w *RenderWindow) Run(p *pipeline.Pipeline, gles *glrender.Runtime) {
	w.pipeline = p
	w.gles = gles

	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.MakeContextCurrent()
		gles.Viewport(width, height)
	})
	gles.Viewport(w.GetFramebufferSize())

	glib.TimeoutAdd(frameInterval, w.frame)
}

// Capture reads back the next drawn frame and hands it to f.
func (w *RenderWindow) Capture(f func(*image.NRGBA)) {
	w.captures = append(w.captures, f)
}

func (w *RenderWindow) frame() bool {
	if w.stopped {
		return false
	}

	glfw.PollEvents()
	if w.ShouldClose() {
		w.stopped = true
		w.MakeContextCurrent()
		w.gles.Release()
		w.quit(nil)
		return false
	}

	w.MakeContextCurrent()
	if err := w.pipeline.Frame(); err != nil {
		// a failing draw repeats every tick
		if err.Error() != w.lastErr {
			log.Println(err)
			w.lastErr = err.Error()
		}
	} else {
		w.lastErr = ""
	}

	if degraded := w.pipeline.Degraded(); degraded != w.degraded {
		w.degraded = degraded
		if degraded {
			w.SetTitle(renderTitle + " (last edit failed to build)")
		} else {
			w.SetTitle(renderTitle)
		}
	}

	if len(w.captures) > 0 {
		captures := w.captures
		w.captures = nil
		frame := w.gles.ReadPixels()
		for _, f := range captures {
			f(frame)
		}
	}

	w.SwapBuffers()
	return true
}
