package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldither/pipeline"
)

// CatchPanicToContext turns a panic in a GTK callback into the cancel cause
// of the application context.
func CatchPanicToContext(cancel context.CancelCauseFunc) {
	v := recover()
	if v == nil {
		return
	}

	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", v)
	}
	if cancel != nil {
		cancel(fmt.Errorf("%w\n%s", err, debug.Stack()))
	}
}

// WrapErrorDialog runs failable and reports its error in a dialog once the
// main loop is idle.
func WrapErrorDialog(parent *gtk.ApplicationWindow, failable func() error) func() {
	return func() {
		if err := failable(); err != nil {
			log.Println(err)
			glib.IdleAdd(func() {
				NewErrorDialog(parent, err)
			})
		}
	}
}

// NewErrorDialog shows err modally. Shader compile logs are shown in full
// and can be selected for copying.
func NewErrorDialog(parent *gtk.ApplicationWindow, err error) {
	title := "Error"
	var aerr *pipeline.AssemblyError
	if errors.As(err, &aerr) {
		title = "Shader failed to build"
	}

	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		title,
	)
	dialog.FormatSecondaryText("%s", err.Error())
	dialog.Connect("response", dialog.Destroy)

	messageArea, err := dialog.GetMessageArea()
	if err != nil {
		log.Println(err)
	} else {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Run()
}

// NewImageDialog opens a window previewing pixbuf with Save and Delete
// buttons. Either response closes the window.
func NewImageDialog(
	app *gtk.Application,
	title string,
	pixbuf *gdk.Pixbuf,
	responseSave func(),
	responseDelete func(),
) (*ImagePreview, error) {
	w := &ImagePreview{}
	var err error

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	w.SetTitle(title)

	previewImage, err := gtk.ImageNewFromPixbuf(pixbuf)
	if err != nil {
		return nil, fmt.Errorf("gtk.ImageNewFromPixbuf: %w", err)
	}
	previewImage.SetHExpand(true)
	previewImage.SetVExpand(true)

	deleteButton, _ := gtk.ButtonNewWithLabel("Delete")
	deleteButton.Connect("clicked", func() {
		if responseDelete != nil {
			responseDelete()
		}
		w.Destroy()
	})

	saveButton, _ := gtk.ButtonNewWithLabel("Save")
	saveButton.Connect("clicked", func() {
		if responseSave != nil {
			responseSave()
		}
		w.Destroy()
	})

	grid, _ := gtk.GridNew()
	grid.Attach(previewImage, 0, 0, 5, 1)
	grid.Attach(saveButton, 0, 1, 1, 1)
	grid.Attach(deleteButton, 4, 1, 1, 1)
	w.Add(grid)

	return w, nil
}

type ImagePreview struct {
	*gtk.ApplicationWindow
}
