package model

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

// Color is a packed 0xAARRGGBB pixel
type Color uint32

const (
	ColorAlive Color = 0xFF00FF00
	ColorBorn  Color = 0xFF008800
	ColorDead  Color = 0xFF000000
	ColorDied  Color = 0xFF888888
)

// Channels splits the color into 8-bit channels
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// CellColor maps a cell state to its display color. Without highlighting,
// only ColorAlive and ColorDead are produced.
func CellColor(alive, changed, highlight bool) Color {
	switch {
	case alive && changed && highlight:
		return ColorBorn
	case alive:
		return ColorAlive
	case changed && highlight:
		return ColorDied
	default:
		return ColorDead
	}
}

// RenderToBuffer writes one Color per cell into buf in row-major order. The
// buffer must hold exactly width*height pixels. A missing world or a
// mismatched buffer is logged and reported, and buf is left untouched.
func (w *World) RenderToBuffer(buf []uint32, highlight bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkRender("RenderToBuffer", len(buf), w.cellCount); err != nil {
		return err
	}

	for i := range w.cellCount {
		buf[i] = uint32(CellColor(w.current.IsAlive(i), w.transitions.IsAlive(i), highlight))
	}

	w.logger.Log(context.Background(), utils.LevelTrace, "rendered buffer", "generation", w.generation)
	return nil
}

// RenderToImage is RenderToBuffer for an RGBA image whose bounds are exactly
// the world size.
func (w *World) RenderToImage(img *image.RGBA, highlight bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var (
		bounds = image.Rectangle{}
		pixels = 0
	)
	if img != nil {
		bounds = img.Bounds()
		if bounds.Dx() == w.width && bounds.Dy() == w.height {
			pixels = w.cellCount
		}
	}
	if err := w.checkRender("RenderToImage", pixels, w.cellCount); err != nil {
		return err
	}

	for i := range w.cellCount {
		var (
			c          = CellColor(w.current.IsAlive(i), w.transitions.IsAlive(i), highlight)
			r, g, b, a = c.Channels()
			off        = img.PixOffset(bounds.Min.X+i%w.width, bounds.Min.Y+i/w.width)
		)
		img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = r, g, b, a
	}

	w.logger.Log(context.Background(), utils.LevelTrace, "rendered image", "generation", w.generation)
	return nil
}

func (w *World) checkRender(op string, got, want int) error {
	if w.current == nil {
		w.logger.Warn("render without world", "op", op)
		return errors.Wrapf(ErrNotCreated, "[%s]", op)
	}
	if got != want {
		w.logger.Warn("render buffer mismatch",
			"op", op, "pixels", got, "width", w.width, "height", w.height)
		return errors.Wrapf(ErrBufferMismatch, "[%s] got %d pixels, want %dx%d", op, got, w.width, w.height)
	}
	return nil
}
