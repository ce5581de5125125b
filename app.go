package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldither/config"
	"github.com/stewi1014/gldither/editor"
	"github.com/stewi1014/gldither/glrender"
	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/pipeline"
	"github.com/stewi1014/gldither/programs"
)

// activate opens the render and config windows and starts the pipeline on
// the configured seed program.
func activate(ctx context.Context, app *gtk.Application, cfg config.Config, quit func(error)) error {
	seed, ok := programs.Lookup(cfg.Program)
	if !ok {
		return fmt.Errorf("unknown program %q", cfg.Program)
	}

	renderWindow, err := NewRenderWindow(cfg.Window.Width, cfg.Window.Height, quit)
	if err != nil {
		return err
	}

	gles, err := glrender.New(glfw.GetTime, slog.Default())
	if err != nil {
		return err
	}

	configWindow, err := NewConfigWindow(app, quit)
	if err != nil {
		return err
	}
	configWindow.SetTitle("gldither")
	configWindow.Connect("destroy", func() {
		quit(nil)
	})

	p := pipeline.New(gles, configWindow, cfg.Settings())
	if err := p.Start(seed.Fragment); err != nil {
		log.Println(err)
		NewErrorDialog(configWindow.ApplicationWindow, err)
		return err
	}

	if cfg.Watch != "" {
		fileEditor, err := editor.NewFileEditor(cfg.Watch, func(f func()) {
			glib.IdleAdd(f)
		})
		if err != nil {
			return err
		}
		p.AttachEditor(fileEditor)
		if text, err := fileEditor.Read(); err == nil && text != p.Source() {
			p.Post(pipeline.Edit{Source: text})
		}

		go func() {
			if err := fileEditor.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Println(err)
			}
		}()
		configWindow.AddLabel(fmt.Sprintf("editing %s", fileEditor.Path()))
	} else {
		editorView, err := configWindow.AddEditor()
		if err != nil {
			return err
		}
		p.AttachEditor(editorView)
	}

	settings := p.Settings()
	configWindow.AddChoice("palette", palette.Labels(), settings.Palette, func(i int) {
		p.Post(pipeline.SelectPalette{Index: i})
	})
	configWindow.AddSlider("resolution", pipeline.MinResolution, pipeline.MaxResolution, 1, float64(settings.Resolution), func(v float64) {
		p.Post(pipeline.SetResolution{Level: int(v)})
	})
	configWindow.AddButton("save", func() {
		renderWindow.Capture(func(frame *image.NRGBA) {
			WrapErrorDialog(configWindow.ApplicationWindow, func() error {
				opts := SaveOptions{Dir: cfg.Save.Dir, Size: cfg.Save.Size}
				return previewFrame(app, configWindow.ApplicationWindow, opts, frame, time.Now())
			})()
		})
	})

	configWindow.ShowAll()
	renderWindow.Run(p, gles)
	return nil
}
