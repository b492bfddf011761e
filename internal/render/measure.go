package render

import (
	"math"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/sketchpad/drawable"
)

// lineMarginRatio is the gap added below every line, relative to the font's
// natural line height.
const lineMarginRatio = 0.1

// Metrics is the measured layout of a text box at its nominal font size.
type Metrics struct {
	Width      float64
	LineHeight float64
	LineMargin float64
	Height     float64
	Ascent     float64
	Lines      []string
}

// Measure lays out content with font. Hard line breaks always split lines;
// when wrap is positive, lines longer than wrap are word-wrapped as well.
func (f *Fonts) Measure(content string, font drawable.Font, wrap float64) Metrics {
	face := f.Face(font)
	if face == nil {
		return Metrics{Lines: []string{content}}
	}

	if wrap <= 0 {
		wrap = math.MaxFloat64
	}
	var lines []string
	for _, r := range text.WrapText(content, face, wrap, text.WrapWordChar) {
		lines = append(lines, r.Text)
	}

	m := face.Metrics()
	natural := m.LineHeight()
	mt := Metrics{
		LineMargin: natural * lineMarginRatio,
		Ascent:     m.Ascent,
		Lines:      lines,
	}
	mt.LineHeight = natural + mt.LineMargin
	mt.Height = mt.LineHeight * float64(len(lines))
	for _, l := range lines {
		mt.Width = max(mt.Width, face.Advance(l))
	}
	return mt
}
