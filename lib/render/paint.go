// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Card palette, as straight-alpha colors.
var (
	white   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black   = color.NRGBA{A: 0xff}
	zinc100 = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf5, A: 0xff}
	zinc300 = color.NRGBA{R: 0xd4, G: 0xd4, B: 0xd8, A: 0xff}
	zinc400 = color.NRGBA{R: 0xa1, G: 0xa1, B: 0xaa, A: 0xff}
	zinc500 = color.NRGBA{R: 0x71, G: 0x71, B: 0x7a, A: 0xff}
	zinc900 = color.NRGBA{R: 0x18, G: 0x18, B: 0x1b, A: 0xff}
)

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}

// box is a rectangle in logical units.
type box struct {
	x, y, w, h float64
}

func (b box) right() float64  { return b.x + b.w }
func (b box) bottom() float64 { return b.y + b.h }

// textStyle describes one run of card text.
type textStyle struct {
	weight weight
	size   float64
	color  color.NRGBA

	// tracking is extra space between glyphs in ems.
	tracking float64

	// lineHeight in logical units. Zero means 1.25 × size.
	lineHeight float64
}

func (style textStyle) leading() float64 {
	if style.lineHeight > 0 {
		return style.lineHeight
	}
	return style.size * 1.25
}

// painter draws logical-unit primitives onto a pixel canvas.
type painter struct {
	dst   *image.RGBA
	scale float64
	faces *faceSet
	err   error
}

func (p *painter) px(v float64) int {
	return int(math.Round(v * p.scale))
}

func (p *painter) rect(b box) image.Rectangle {
	return image.Rect(p.px(b.x), p.px(b.y), p.px(b.right()), p.px(b.bottom()))
}

// fill paints a rounded rectangle in a solid color.
func (p *painter) fill(b box, radius float64, c color.NRGBA) {
	bounds := p.rect(b)
	mask := roundedMask{bounds: bounds, radius: radius * p.scale}
	draw.DrawMask(p.dst, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, draw.Over)
}

// stroke paints a rounded outline of the given logical width.
func (p *painter) stroke(b box, radius, width float64, c color.NRGBA) {
	bounds := p.rect(b)
	inset := width * p.scale
	mask := ringMask{
		outer: roundedMask{bounds: bounds, radius: radius * p.scale},
		inner: roundedMask{bounds: bounds.Inset(int(math.Max(1, math.Round(inset)))), radius: math.Max(0, radius*p.scale-inset)},
	}
	draw.DrawMask(p.dst, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, draw.Over)
}

// dashedVertical paints a dashed one-unit line from top to bottom at x.
func (p *painter) dashedVertical(x, top, bottom float64, c color.NRGBA) {
	const dash, gap = 4.0, 4.0
	for y := top; y < bottom; y += dash + gap {
		p.fill(box{x: x, y: y, w: 1, h: math.Min(dash, bottom-y)}, 0, c)
	}
}

func (p *painter) face(style textStyle) font.Face {
	if p.err != nil {
		return nil
	}
	face, err := p.faces.face(style.weight, style.size)
	if err != nil {
		p.err = err
		return nil
	}
	return face
}

// measure returns the logical advance width of text in style.
func (p *painter) measure(style textStyle, text string) float64 {
	face := p.face(style)
	if face == nil {
		return 0
	}
	width := p.faces.toLogical(font.MeasureString(face, text))
	if count := utf8.RuneCountInString(text); count > 1 {
		width += style.tracking * style.size * float64(count-1)
	}
	return width
}

// text draws one line with its line box starting at (x, top) and
// returns the advance width.
func (p *painter) text(style textStyle, x, top float64, text string) float64 {
	face := p.face(style)
	if face == nil {
		return 0
	}
	metrics := face.Metrics()
	ascent := p.faces.toLogical(metrics.Ascent)
	descent := p.faces.toLogical(metrics.Descent)
	baseline := top + style.leading()/2 + (ascent-descent)/2

	drawer := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(style.color),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x * p.scale), Y: toFixed(baseline * p.scale)},
	}
	if style.tracking == 0 {
		drawer.DrawString(text)
		return p.faces.toLogical(drawer.Dot.X) - x
	}
	extra := toFixed(style.tracking * style.size * p.scale)
	for index, r := range []rune(text) {
		if index > 0 {
			drawer.Dot.X += extra
		}
		drawer.DrawString(string(r))
	}
	return p.faces.toLogical(drawer.Dot.X) - x
}

// centered draws text horizontally centered on cx.
func (p *painter) centered(style textStyle, cx, top float64, text string) {
	p.text(style, cx-p.measure(style, text)/2, top, text)
}

// rightAligned draws text ending at right.
func (p *painter) rightAligned(style textStyle, right, top float64, text string) {
	p.text(style, right-p.measure(style, text), top, text)
}

// wrap breaks text into lines no wider than width, on spaces.
func (p *painter) wrap(style textStyle, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if p.measure(style, candidate) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// roundedMask is an anti-aliased rounded-rectangle alpha mask.
type roundedMask struct {
	bounds image.Rectangle
	radius float64
}

func (mask roundedMask) ColorModel() color.Model { return color.AlphaModel }
func (mask roundedMask) Bounds() image.Rectangle { return mask.bounds }

func (mask roundedMask) At(x, y int) color.Color {
	return color.Alpha{A: uint8(math.Round(mask.coverage(x, y) * 255))}
}

func (mask roundedMask) coverage(x, y int) float64 {
	if !(image.Point{X: x, Y: y}).In(mask.bounds) {
		return 0
	}
	if mask.radius <= 0 {
		return 1
	}
	fx, fy := float64(x)+0.5, float64(y)+0.5
	cx := clamp(fx, float64(mask.bounds.Min.X)+mask.radius, float64(mask.bounds.Max.X)-mask.radius)
	cy := clamp(fy, float64(mask.bounds.Min.Y)+mask.radius, float64(mask.bounds.Max.Y)-mask.radius)
	distance := math.Hypot(fx-cx, fy-cy)
	return clamp(mask.radius-distance+0.5, 0, 1)
}

// ringMask covers the outer shape minus the inner one.
type ringMask struct {
	outer, inner roundedMask
}

func (mask ringMask) ColorModel() color.Model { return color.AlphaModel }
func (mask ringMask) Bounds() image.Rectangle { return mask.outer.bounds }

func (mask ringMask) At(x, y int) color.Color {
	coverage := mask.outer.coverage(x, y) * (1 - mask.inner.coverage(x, y))
	return color.Alpha{A: uint8(math.Round(coverage * 255))}
}

func clamp(v, low, high float64) float64 {
	if high < low {
		return (low + high) / 2
	}
	return math.Max(low, math.Min(high, v))
}
