package main

import (
	"context"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// BufferImage returns a BufferedImage that copies img into memory when
// Buffer is called. Program images compute every pixel on demand, so they
// are buffered before encoding or scaling.
func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		src: img,
	}
}

type BufferedImage struct {
	src  image.Image
	buff *image.NRGBA
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.src.Bounds().Dx(), b.src.Bounds().Dy())
}

func (b *BufferedImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *BufferedImage) At(x, y int) color.Color {
	if b.buff == nil {
		min := b.src.Bounds().Min
		return b.src.At(x+min.X, y+min.Y)
	}
	return b.buff.At(x, y)
}

func (b *BufferedImage) Opaque() bool {
	return true
}

// NRGBA returns the buffered pixels, or nil before Buffer has completed.
func (b *BufferedImage) NRGBA() *image.NRGBA {
	return b.buff
}

// Buffer renders the source image in column chunks across goroutines.
func (b *BufferedImage) Buffer(ctx context.Context) error {
	buff := image.NewNRGBA(b.Bounds())

	min, max := b.src.Bounds().Min, b.src.Bounds().Max
	chunkSize := 50
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					buff.Set(x-min.X, y-min.Y, b.src.At(x, y))
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	b.buff = buff
	return nil
}

// scaleNearest scales img so its longest side is size pixels. Nearest
// neighbour keeps the dither pattern crisp. A size <= 0 returns img as is.
func scaleNearest(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	w, h := fitSize(bounds.Dx(), bounds.Dy(), size)
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// fitSize scales w x h so the longest side is size, keeping the aspect ratio.
// A size <= 0 or an empty rectangle is returned unchanged.
func fitSize(w, h, size int) (int, int) {
	if size <= 0 || w == 0 || h == 0 || max(w, h) == size {
		return w, h
	}
	if w >= h {
		return size, max(1, h*size/w)
	}
	return max(1, w*size/h), size
}
