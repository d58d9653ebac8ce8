// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
)

const (
	cardRadius    = 24.0
	glowOpacity   = 0.4
	glowFalloff   = 0.6
	stripePeriod  = 6.0
	stripeWidth   = 2.0
	stripeAlpha   = 0.03
	borderOpacity = 0.15
)

// glow is an elliptical radial gradient in pixel space that fades to
// transparent at glowFalloff of its radii.
type glow struct {
	cx, cy, rx, ry float64
	color          color.NRGBA
}

func (g glow) alpha(x, y float64) float64 {
	distance := math.Hypot((x-g.cx)/g.rx, (y-g.cy)/g.ry)
	strength := 1 - distance/glowFalloff
	if strength <= 0 {
		return 0
	}
	return strength * float64(g.color.A) / 255 * glowOpacity
}

// panel is a translucent rounded rectangle composited in the
// background pass, beneath text.
type panel struct {
	mask  roundedMask
	color color.NRGBA
}

type rgb struct{ r, g, b float64 }

func (c rgb) over(src color.NRGBA, alpha float64) rgb {
	if alpha <= 0 {
		return c
	}
	return rgb{
		r: float64(src.R)*alpha + c.r*(1-alpha),
		g: float64(src.G)*alpha + c.g*(1-alpha),
		b: float64(src.B)*alpha + c.b*(1-alpha),
	}
}

func lerp(from, to color.NRGBA, t float64) rgb {
	return rgb{
		r: float64(from.R) + (float64(to.R)-float64(from.R))*t,
		g: float64(from.G) + (float64(to.G)-float64(from.G))*t,
		b: float64(from.B) + (float64(to.B)-float64(from.B))*t,
	}
}

// paintBackground fills the canvas, then paints the card body in one
// pass: diagonal gradient, the two glows, the stripe texture, panels
// and the hairline border, all clipped to the rounded card shape.
func (p *painter) paintBackground(ctx context.Context, canvas color.NRGBA, glows []glow, panels []panel) error {
	bounds := p.dst.Bounds()
	draw.Draw(p.dst, bounds, image.NewUniform(canvas), image.Point{}, draw.Src)

	card := roundedMask{bounds: bounds, radius: cardRadius * p.scale}
	border := math.Max(1, math.Round(p.scale))
	inner := roundedMask{bounds: bounds.Inset(int(border)), radius: cardRadius*p.scale - border}

	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if y%64 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			coverage := card.coverage(x, y)
			if coverage == 0 {
				continue
			}
			fx, fy := float64(x)+0.5, float64(y)+0.5

			// to-bottom-right: zinc-900 until the midpoint, then to black.
			t := (fx/width + fy/height) / 2
			pixel := lerp(zinc900, black, math.Max(0, t-0.5)*2)

			for _, g := range glows {
				pixel = pixel.over(g.color, g.alpha(fx, fy))
			}

			if math.Mod((fx+fy)/(p.scale*math.Sqrt2), stripePeriod) < stripeWidth {
				pixel = pixel.over(white, stripeAlpha)
			}

			for _, panel := range panels {
				pixel = pixel.over(panel.color, panel.mask.coverage(x, y)*float64(panel.color.A)/255)
			}

			pixel = pixel.over(white, (1-inner.coverage(x, y))*borderOpacity)

			under := p.dst.RGBAAt(x, y)
			p.dst.SetRGBA(x, y, color.RGBA{
				R: uint8(math.Round(pixel.r*coverage + float64(under.R)*(1-coverage))),
				G: uint8(math.Round(pixel.g*coverage + float64(under.G)*(1-coverage))),
				B: uint8(math.Round(pixel.b*coverage + float64(under.B)*(1-coverage))),
				A: uint8(math.Round(255*coverage + float64(under.A)*(1-coverage))),
			})
		}
	}
	return nil
}
