package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

const saveNameLayout = "gldither-20060102-150405.png"

// previewSize is the longest side of the save preview in pixels.
const previewSize = 512

type SaveOptions struct {
	// Dir is created if missing.
	Dir string
	// Size is the longest side of the saved image; 0 keeps the frame size.
	Size int
}

// pendingFrame is an encoded frame that has not been written yet.
type pendingFrame struct {
	Name          string
	PNG           []byte
	Width, Height int
}

// encodeFrame scales and encodes frame, naming it after now.
func encodeFrame(opts SaveOptions, frame image.Image, now time.Time) (*pendingFrame, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	img := scaleNearest(frame, opts.Size)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}

	return &pendingFrame{
		Name:   filepath.Join(dir, now.Format(saveNameLayout)),
		PNG:    buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// Write creates the save directory and writes the PNG.
func (f *pendingFrame) Write() error {
	if err := os.MkdirAll(filepath.Dir(f.Name), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	return os.WriteFile(f.Name, f.PNG, 0o644)
}

// saveFrame writes frame as a PNG named after now and returns the path.
func saveFrame(opts SaveOptions, frame image.Image, now time.Time) (string, error) {
	pending, err := encodeFrame(opts, frame, now)
	if err != nil {
		return "", err
	}
	return pending.Name, pending.Write()
}

// previewFrame encodes frame and shows it in an image dialog. The file is
// only written if the user presses Save.
func previewFrame(app *gtk.Application, parent *gtk.ApplicationWindow, opts SaveOptions, frame image.Image, now time.Time) error {
	pending, err := encodeFrame(opts, frame, now)
	if err != nil {
		return err
	}

	pixbuf, err := gdk.PixbufNewFromBytesOnly(pending.PNG)
	if err != nil {
		return fmt.Errorf("loading preview: %w", err)
	}
	if w, h := fitSize(pending.Width, pending.Height, previewSize); w < pending.Width {
		pixbuf, err = pixbuf.ScaleSimple(w, h, gdk.INTERP_NEAREST)
		if err != nil {
			return fmt.Errorf("scaling preview: %w", err)
		}
	}

	dialog, err := NewImageDialog(
		app,
		filepath.Base(pending.Name),
		pixbuf,
		WrapErrorDialog(parent, func() error {
			if err := pending.Write(); err != nil {
				return err
			}
			log.Println("saved", pending.Name)
			return nil
		}),
		nil,
	)
	if err != nil {
		return err
	}
	dialog.ShowAll()
	return nil
}

func writePNG(name string, img image.Image) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(name)
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %v: %w", name, err)
	}
	return nil
}
