// Package compositor draws the daily card: the background inside a white frame,
// the date ribbon above it and the poem below it.
package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"faal-poster/internal/domain"
	"faal-poster/pkg/rtl"

	"github.com/disintegration/imaging"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"
)

// Layout constants, in pixels.
const (
	FrameWidth  = 10
	ExtraWidth  = 2 * FrameWidth
	ExtraHeight = 280
	ImageTop    = 90
	RibbonTop   = 10
	PoemOffset  = 30
	DefaultSize = 60
)

// Compositor renders cards with a single font size.
type Compositor struct {
	shaper   rtl.Shaper
	fontSize float64

	// Label is drawn after the date on the ribbon.
	Label string
}

// New creates a Compositor. A non-positive size uses DefaultSize.
func New(shaper rtl.Shaper, fontSize float64) *Compositor {
	if fontSize <= 0 {
		fontSize = DefaultSize
	}
	return &Compositor{shaper: shaper, fontSize: fontSize, Label: domain.FaalLabel}
}

// Compose draws the card and returns the canvas.
func (c *Compositor) Compose(card domain.Card) (*image.NRGBA, error) {
	src, err := imaging.Decode(bytes.NewReader(card.Background), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	face, err := font.ParseTTF(bytes.NewReader(card.Font))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFont, err)
	}
	size := fixed.Int26_6(math.Round(c.fontSize * 64))

	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	canvas := imaging.New(srcW+ExtraWidth, srcH+ExtraHeight, color.White)
	canvas = imaging.Paste(canvas, src, image.Pt(FrameWidth, ImageTop))
	width, height := canvas.Bounds().Dx(), canvas.Bounds().Dy()

	pen := newPen(face, c.fontSize, width, height)

	// The label follows the date in reading order, so its runs sit to the left.
	ribbon := c.shaper.Shape(face, size, firstLine(card.DateText))
	if c.Label != "" {
		label := c.shaper.Shape(face, size, firstLine(c.Label))
		ribbon[0].Runs = append(label[0].Runs, ribbon[0].Runs...)
	}
	rb := pen.measure(ribbon)
	pen.drawBlock(rb, (width-rb.width)/2, RibbonTop)

	poem := pen.measure(c.shaper.Shape(face, size, card.PoemText))
	pen.drawBlock(poem, (width-poem.width)/2, (height-poem.height)/2+srcH/2+PoemOffset)

	pen.ras.Draw(canvas, canvas.Bounds(), image.Black, image.Point{})
	return canvas, nil
}

// Render composes the card and encodes it as PNG.
func (c *Compositor) Render(card domain.Card) ([]byte, error) {
	canvas, err := c.Compose(card)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func firstLine(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return first
}

type line struct {
	shaped rtl.Line
	width  int
	minX   float32
}

// block is a measured run of lines. Its width is the widest line's ink width,
// its height is the line count times the face's line height.
type block struct {
	lines  []line
	width  int
	height int
}

// pen accumulates glyph outlines for a whole canvas and fills them in one pass.
type pen struct {
	face       *font.Face
	scale      float32
	ascent     int
	lineHeight int
	ras        *vector.Rasterizer
}

func newPen(face *font.Face, size float64, w, h int) *pen {
	scale := float32(size) / float32(face.Upem())
	ext, _ := face.FontHExtents()
	return &pen{
		face:       face,
		scale:      scale,
		ascent:     int(math.Ceil(float64(ext.Ascender * scale))),
		lineHeight: int(math.Ceil(float64((ext.Ascender - ext.Descender + ext.LineGap) * scale))),
		ras:        vector.NewRasterizer(w, h),
	}
}

func (p *pen) measure(lines []rtl.Line) block {
	var b block
	for _, sl := range lines {
		l := line{shaped: sl}
		if minX, maxX, ok := sl.Ink(); ok {
			l.minX = fromFixed(minX)
			l.width = int(math.Ceil(float64(fromFixed(maxX) - l.minX)))
		}
		if l.width > b.width {
			b.width = l.width
		}
		b.lines = append(b.lines, l)
	}
	b.height = len(b.lines) * p.lineHeight
	return b
}

// drawBlock adds b with its top-left corner at (x, y), centering each line in the block.
func (p *pen) drawBlock(b block, x, y int) {
	for i, l := range b.lines {
		left := float32(x+(b.width-l.width)/2) - l.minX
		baseline := float32(y + i*p.lineHeight + p.ascent)
		for _, g := range l.shaped.Glyphs() {
			p.glyph(g, left+fromFixed(g.X), baseline-fromFixed(g.Y))
		}
	}
}

func (p *pen) glyph(g rtl.Glyph, originX, originY float32) {
	outline, ok := g.Face.GlyphData(g.ID).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return
	}
	pt := func(sp ot.SegmentPoint) (float32, float32) {
		return originX + sp.X*p.scale, originY - sp.Y*p.scale
	}

	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				p.ras.ClosePath()
			}
			p.ras.MoveTo(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			p.ras.LineTo(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			p.ras.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			p.ras.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		p.ras.ClosePath()
	}
}

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
