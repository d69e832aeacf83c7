// Package snapshot rasterizes frames to PNG files so a run can be captured
// without a terminal or window.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"consolefps/internal/frame"
)

// DefaultSize is the font size in points at 72 DPI.
const DefaultSize = 14

var (
	background = color.RGBA{10, 10, 15, 255}
	foreground = color.RGBA{200, 200, 210, 255}
)

// Writer is an engine.Display that writes each frame to a PNG file. With
// Every unset the same file is overwritten, so it ends up holding the last
// frame; with Every set the frame number is spliced into the name.
type Writer struct {
	path   string
	every  bool
	face   font.Face
	cellW  int
	cellH  int
	ascent int
	n      int
}

// New prepares a Writer rendering Go Mono at size points.
func New(path string, size float64, every bool) (*Writer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("font has no advance for 'M'")
	}
	m := face.Metrics()
	return &Writer{
		path:   path,
		every:  every,
		face:   face,
		cellW:  adv.Ceil(),
		cellH:  m.Height.Ceil(),
		ascent: m.Ascent.Ceil(),
	}, nil
}

// render draws buf into a new image, one glyph per cell.
func (w *Writer) render(buf *frame.Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width()*w.cellW, buf.Height()*w.cellH))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(foreground), Face: w.face}
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			r := buf.At(x, y)
			if r == frame.Blank {
				continue
			}
			d.Dot = fixed.P(x*w.cellW, y*w.cellH+w.ascent)
			d.DrawString(string(r))
		}
	}
	return img
}

// Present implements engine.Display.
func (w *Writer) Present(buf *frame.Buffer) error {
	w.n++
	return w.write(w.target(), w.render(buf))
}

func (w *Writer) target() string {
	if !w.every {
		return w.path
	}
	ext := filepath.Ext(w.path)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(w.path, ext), w.n, ext)
}

func (w *Writer) write(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
