// Package fixtures provides oracle responses and images for tests.
package fixtures

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"
	"image/png"
)

// PersianFont is DejaVu Sans, which carries Arabic-script glyphs and the
// init/medi/fina/rlig lookups. License in fonts/LICENSE-DejaVu.txt.
//
//go:embed fonts/DejaVuSans.ttf
var PersianFont []byte

// FaalResponse is an oracle answer with two couplets, trimmed from a real Ganjoor reply.
func FaalResponse() string {
	return `{
  "id": 2131,
  "title": "غزل شمارهٔ ۱",
  "fullTitle": "حافظ » غزلیات » غزل شمارهٔ ۱",
  "urlSlug": "sh1",
  "verses": [
    {"vOrder": 1, "coupletIndex": 0, "versePosition": 0, "text": "الا یا ایها الساقی ادر کاسا و ناولها"},
    {"vOrder": 2, "coupletIndex": 0, "versePosition": 1, "text": "که عشق آسان نمود اول ولی افتاد مشکل‌ها"},
    {"vOrder": 3, "coupletIndex": 1, "versePosition": 0, "text": "به بوی نافه‌ای کاخر صبا زان طره بگشاید"},
    {"vOrder": 4, "coupletIndex": 1, "versePosition": 1, "text": "ز تاب جعد مشکینش چه خون افتاد در دل‌ها"}
  ]
}`
}

// FaalVerses lists the verse texts of FaalResponse in order.
func FaalVerses() []string {
	return []string{
		"الا یا ایها الساقی ادر کاسا و ناولها",
		"که عشق آسان نمود اول ولی افتاد مشکل‌ها",
		"به بوی نافه‌ای کاخر صبا زان طره بگشاید",
		"ز تاب جعد مشکینش چه خون افتاد در دل‌ها",
	}
}

// SingleVerseResponse has "verses" as one object instead of a list.
func SingleVerseResponse() string {
	return `{"id": 7, "verses": {"vOrder": 1, "text": "صبا به لطف بگو آن غزال رعنا را"}}`
}

// MalformedResponse is valid JSON without the verse list.
func MalformedResponse() string {
	return `{"id": 7, "title": "no verses here"}`
}

// PNG encodes a w×h image filled with c.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
