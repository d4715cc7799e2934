package compositor_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"faal-poster/internal/adapters/compositor"
	"faal-poster/internal/domain"
	"faal-poster/pkg/rtl"
	"faal-poster/test/fixtures"

	"golang.org/x/image/font/gofont/goregular"
)

var blue = color.NRGBA{B: 255, A: 255}

func newCompositor() *compositor.Compositor {
	c := compositor.New(rtl.NewPersian(), 40)
	c.Label = ""
	return c
}

func card(w, h int, date, poem string) domain.Card {
	return domain.Card{
		Background: fixtures.PNG(w, h, blue),
		Font:       goregular.TTF,
		DateText:   date,
		PoemText:   poem,
	}
}

// inkBounds returns the bounding box of dark pixels inside r.
func inkBounds(img *image.NRGBA, r image.Rectangle) image.Rectangle {
	var ink image.Rectangle
	found := false
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R < 128 && c.B < 128 {
				p := image.Rect(x, y, x+1, y+1)
				if !found {
					ink, found = p, true
				} else {
					ink = ink.Union(p)
				}
			}
		}
	}
	return ink
}

func TestCompose_CanvasSizeAndPaste(t *testing.T) {
	// Arrange
	c := newCompositor()

	// Act
	img, err := c.Compose(card(200, 100, "", ""))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(220, 380) {
		t.Fatalf("canvas size: got %v, want (220,380)", got)
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{10, 90, blue},
		{209, 189, blue},
		{9, 90, color.NRGBA{255, 255, 255, 255}},
		{10, 89, color.NRGBA{255, 255, 255, 255}},
		{210, 190, color.NRGBA{255, 255, 255, 255}},
	}
	for _, ck := range checks {
		if got := img.NRGBAAt(ck.x, ck.y); got != ck.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", ck.x, ck.y, got, ck.want)
		}
	}
}

func TestCompose_RibbonIsCentered(t *testing.T) {
	c := newCompositor()

	img, err := c.Compose(card(400, 100, "HI 12", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ink := inkBounds(img, image.Rect(0, 0, 420, 90))
	if ink.Empty() {
		t.Fatal("no ribbon text drawn")
	}
	center := (ink.Min.X + ink.Max.X) / 2
	if diff := center - 420/2; diff < -3 || diff > 3 {
		t.Errorf("ribbon center x: got %d, want about %d (ink %v)", center, 420/2, ink)
	}
	if ink.Min.Y < 10 {
		t.Errorf("ribbon starts above y=10: %v", ink)
	}
}

func TestCompose_PoemIsCenteredBelowImage(t *testing.T) {
	c := newCompositor()

	img, err := c.Compose(card(400, 100, "", "First line\nSecond"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ink := inkBounds(img, image.Rect(0, 190, 420, 380))
	if ink.Empty() {
		t.Fatal("no poem text drawn")
	}
	center := (ink.Min.X + ink.Max.X) / 2
	if diff := center - 420/2; diff < -3 || diff > 3 {
		t.Errorf("poem center x: got %d, want about %d (ink %v)", center, 420/2, ink)
	}
	if ink.Dy() < 40 {
		t.Errorf("two lines should be drawn, ink height %d", ink.Dy())
	}
	if top := inkBounds(img, image.Rect(0, 0, 420, 90)); !top.Empty() {
		t.Errorf("empty date should leave the ribbon blank, ink %v", top)
	}
}

func TestRender_ProducesPNG(t *testing.T) {
	c := compositor.New(rtl.NewPersian(), 0)

	data, err := c.Render(card(50, 40, "x", "y"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if cfg.Width != 70 || cfg.Height != 320 {
		t.Errorf("size: got %dx%d, want 70x320", cfg.Width, cfg.Height)
	}
}

func TestCompose_InvalidInputs(t *testing.T) {
	c := newCompositor()

	bad := card(10, 10, "", "")
	bad.Background = []byte("not an image")
	if _, err := c.Compose(bad); !errors.Is(err, domain.ErrInvalidImage) {
		t.Errorf("background: expected ErrInvalidImage, got %v", err)
	}

	bad = card(10, 10, "", "")
	bad.Font = []byte("not a font")
	if _, err := c.Compose(bad); !errors.Is(err, domain.ErrInvalidFont) {
		t.Errorf("font: expected ErrInvalidFont, got %v", err)
	}
}

func TestCompose_PersianCard(t *testing.T) {
	// Arrange
	c := compositor.New(rtl.NewPersian(), 24)
	in := card(400, 100, "شنبه ۱۴۰۲/۰۷/۱۵", "الا یا ایها الساقی\nادر کاسا و ناولها")
	in.Font = fixtures.PersianFont

	// Act
	img, err := c.Compose(in)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ribbon := inkBounds(img, image.Rect(0, 0, 420, 90))
	if ribbon.Empty() {
		t.Fatal("no ribbon text drawn")
	}
	poem := inkBounds(img, image.Rect(0, 190, 420, 380))
	if poem.Empty() {
		t.Fatal("no poem text drawn")
	}
	center := (poem.Min.X + poem.Max.X) / 2
	if diff := center - 420/2; diff < -3 || diff > 3 {
		t.Errorf("poem center x: got %d, want about %d (ink %v)", center, 420/2, poem)
	}
}

func TestCompose_LabelWidensTheRibbon(t *testing.T) {
	in := card(400, 100, "۱۴۰۲", "")
	in.Font = fixtures.PersianFont

	bare := compositor.New(rtl.NewPersian(), 30)
	bare.Label = ""
	withLabel := compositor.New(rtl.NewPersian(), 30)

	a, err := bare.Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := withLabel.Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	without := inkBounds(a, image.Rect(0, 0, 420, 90))
	with := inkBounds(b, image.Rect(0, 0, 420, 90))
	if with.Dx() <= without.Dx() {
		t.Errorf("ribbon width with label %d, want more than %d", with.Dx(), without.Dx())
	}
}
