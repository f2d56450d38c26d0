// Package font is the boundary between the bar and glyph rasterization.
// Given a string and a target pixel height it produces a positioned run
// of rasterizable glyphs with advance widths and bounding boxes, plus
// the ascent metric needed to place the baseline. Shaping and hinting
// are delegated to golang.org/x/image/font/opentype.
package font

import (
	stderrors "errors"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-ledge/ledge/pkg/errors"
)

// Font wraps a parsed typeface and caches one face per pixel height.
// Face construction is cheap but not free, and the bar re-lays text out
// every frame, so the cache matters.
type Font struct {
	sfnt *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// Parse constructs a Font from raw TrueType/OpenType data.
func Parse(data []byte) (*Font, error) {
	sfnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{
		sfnt:  sfnt,
		faces: make(map[int]font.Face),
	}, nil
}

var (
	defaultFont     *Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// DefaultErr returns the shared bundled face (Go Regular), lazily
// initialized. It returns both the font and any error that occurred
// during initialization.
func DefaultErr() (*Font, error) {
	defaultFontOnce.Do(func() {
		f, err := Parse(goregular.TTF)
		if err != nil {
			defaultFontErr = err
			errors.Report(&errors.Error{
				Op:   "font.Default",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFont = f
	})
	return defaultFont, defaultFontErr
}

// Default returns the shared bundled face.
// For convenience in builders, returns nil on error.
func Default() *Font {
	f, _ := DefaultErr()
	return f
}

// face returns the cached face for the given pixel height.
func (f *Font) face(px int) (font.Face, error) {
	if px <= 0 {
		return nil, stderrors.New("font: non-positive pixel height")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[px]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	f.faces[px] = face
	return face, nil
}

// Ascent returns the distance in pixels from the top of the em box to
// the baseline at the given pixel height.
func (f *Font) Ascent(px int) int {
	face, err := f.face(px)
	if err != nil {
		return 0
	}
	return face.Metrics().Ascent.Ceil()
}

// Glyph is one positioned, rasterizable character of a Run.
type Glyph struct {
	// Rune is the source character.
	Rune rune
	// Bounds is the pixel bounding box of the rasterized form, relative
	// to the run origin. Empty for whitespace and other blank glyphs.
	Bounds image.Rectangle
	// Advance is the x coordinate of the next glyph's origin.
	Advance int

	mask  image.Image
	maskP image.Point
}

// HasBitmap reports whether the glyph rasterizes to any pixels.
func (g *Glyph) HasBitmap() bool {
	return g.mask != nil && !g.Bounds.Empty()
}

// Rasterize invokes put for every covered pixel inside Bounds with a
// coverage value in (0, 1]. Pixels with zero coverage are skipped.
func (g *Glyph) Rasterize(put func(x, y int, coverage float64)) {
	if !g.HasBitmap() {
		return
	}
	alpha, _ := g.mask.(*image.Alpha)
	for y := g.Bounds.Min.Y; y < g.Bounds.Max.Y; y++ {
		for x := g.Bounds.Min.X; x < g.Bounds.Max.X; x++ {
			mx := g.maskP.X + (x - g.Bounds.Min.X)
			my := g.maskP.Y + (y - g.Bounds.Min.Y)
			var a uint8
			if alpha != nil {
				a = alpha.AlphaAt(mx, my).A
			} else {
				a = color.AlphaModel.Convert(g.mask.At(mx, my)).(color.Alpha).A
			}
			if a == 0 {
				continue
			}
			put(x, y, float64(a)/255)
		}
	}
}

// Run is a laid-out line of glyphs at a fixed pixel height.
type Run struct {
	Glyphs []Glyph
	// Width is the ceiling of the final advance, the horizontal space
	// the run occupies.
	Width int
	// Height is the tallest glyph bitmap in the run. This is the inked
	// height, not the line height.
	Height int
	// Ascent is the baseline offset from the run origin.
	Ascent int
}

// BitmapBounds returns the union of the inked glyph boxes. The second
// return is false when no glyph in the run has a bitmap.
func (r *Run) BitmapBounds() (image.Rectangle, bool) {
	var box image.Rectangle
	found := false
	for i := range r.Glyphs {
		g := &r.Glyphs[i]
		if !g.HasBitmap() {
			continue
		}
		if !found {
			box = g.Bounds
			found = true
		} else {
			box = box.Union(g.Bounds)
		}
	}
	return box, found
}

// Layout shapes text at the given pixel height. Glyph positions are
// relative to the run origin with the baseline at Ascent. Missing
// glyphs fall back to the face's replacement glyph; runes the face
// cannot represent at all are skipped.
func (f *Font) Layout(text string, px int) (*Run, error) {
	face, err := f.face(px)
	if err != nil {
		return nil, err
	}

	ascent := face.Metrics().Ascent.Ceil()
	dot := fixed.Point26_6{X: 0, Y: fixed.I(ascent)}
	run := &Run{Ascent: ascent}

	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		dr, mask, maskP, advance, ok := face.Glyph(dot, r)
		if !ok {
			prev = r
			continue
		}
		g := Glyph{
			Rune:   r,
			Bounds: dr,
			mask:   mask,
			maskP:  maskP,
		}
		dot.X += advance
		g.Advance = dot.X.Ceil()
		if !dr.Empty() {
			if h := dr.Dy(); h > run.Height {
				run.Height = h
			}
		} else {
			g.mask = nil
		}
		run.Glyphs = append(run.Glyphs, g)
		prev = r
	}
	run.Width = dot.X.Ceil()
	return run, nil
}

// LayoutMaximized shapes text so the inked glyphs fill as much of
// maxHeight as possible. It lays the text out at maxHeight, measures
// the inked height actually used, and re-lays at the larger scale
// maxHeight^2/(used+1) that the slack permits. The returned offset is
// the vertical padding that centers the rescaled run in maxHeight.
func (f *Font) LayoutMaximized(text string, maxHeight int) (*Run, int, error) {
	run, err := f.Layout(text, maxHeight)
	if err != nil {
		return nil, 0, err
	}
	used := run.Height
	if used == 0 || used >= maxHeight {
		return run, 0, nil
	}

	scaled := int(float64(maxHeight)*float64(maxHeight)/float64(used+1) + 0.5)
	if scaled <= maxHeight {
		return run, 0, nil
	}
	rerun, err := f.Layout(text, scaled)
	if err != nil {
		return nil, 0, err
	}
	if rerun.Height > maxHeight {
		// The rescale overshot; keep the safe first pass.
		return run, 0, nil
	}
	offset := (maxHeight - rerun.Height) / 2
	return rerun, offset, nil
}
