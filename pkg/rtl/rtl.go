// Package rtl lays out right-to-left text for rasterizing: bidi runs, script
// segmentation and OpenType shaping, one line at a time.
package rtl

import (
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Shaper turns logical-order text into shaped lines, one per "\n"-separated
// line of the input.
type Shaper interface {
	Shape(face *font.Face, size fixed.Int26_6, text string) []Line
}

// Persian shapes text on a right-to-left paragraph with the font's own
// contextual forms and ligatures.
type Persian struct {
	mu        sync.Mutex
	shaper    shaping.HarfbuzzShaper
	segmenter shaping.Segmenter
	lang      language.Language
}

// NewPersian creates the default Persian shaper. It is safe for concurrent use.
func NewPersian() *Persian {
	return &Persian{lang: language.NewLanguage("fa")}
}

// Shape shapes each line of text with face at size.
func (p *Persian) Shape(face *font.Face, size fixed.Int26_6, text string) []Line {
	p.mu.Lock()
	defer p.mu.Unlock()

	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, s := range parts {
		lines[i] = p.shapeLine(face, size, []rune(s))
	}
	return lines
}

func (p *Persian) shapeLine(face *font.Face, size fixed.Int26_6, text []rune) Line {
	if len(text) == 0 {
		return Line{}
	}

	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: di.DirectionRTL,
		Face:      face,
		Size:      size,
		Language:  p.lang,
	}

	pieces := p.segmenter.Split(input, singleFace{face})
	runs := make([]shaping.Output, len(pieces))
	for i, in := range pieces {
		runs[i] = p.shaper.Shape(in)
	}
	return Line{Runs: visualOrder(runs)}
}

type singleFace struct{ face *font.Face }

func (s singleFace) ResolveFace(rune) *font.Face { return s.face }

// Line is one shaped line with its runs in visual order, left to right.
type Line struct {
	Runs []shaping.Output
}

// Glyph is a shaped glyph placed relative to the start of its line.
// X and Y are the pen position with the glyph offsets applied; Y grows up.
type Glyph struct {
	Face *font.Face
	Size fixed.Int26_6
	ID   font.GID
	X, Y fixed.Int26_6

	shaping.Glyph
}

// Glyphs lists the glyphs of l from left to right.
func (l Line) Glyphs() []Glyph {
	var out []Glyph
	var pen fixed.Int26_6
	for _, run := range l.Runs {
		for _, g := range run.Glyphs {
			out = append(out, Glyph{
				Face:  run.Face,
				Size:  run.Size,
				ID:    g.GlyphID,
				X:     pen + g.XOffset,
				Y:     g.YOffset,
				Glyph: g,
			})
			pen += g.Advance
		}
	}
	return out
}

// Advance is the pen distance covered by the whole line.
func (l Line) Advance() fixed.Int26_6 {
	var adv fixed.Int26_6
	for _, run := range l.Runs {
		adv += run.Advance
	}
	return adv
}

// Ink returns the horizontal extent of the drawn glyphs relative to the
// line start. ok is false when nothing visible is drawn.
func (l Line) Ink() (minX, maxX fixed.Int26_6, ok bool) {
	for _, g := range l.Glyphs() {
		if g.Width == 0 {
			continue
		}
		left := g.X + g.XBearing
		right := left + g.Width
		if !ok || left < minX {
			minX = left
		}
		if !ok || right > maxX {
			maxX = right
		}
		ok = true
	}
	return minX, maxX, ok
}
