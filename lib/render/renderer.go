// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/bureau-foundation/keepsake/lib/keepsake"
)

// Logical card sizes. Rasterizing multiplies these by the export
// scale.
const (
	WideWidth   = 840.0
	WideHeight  = 360.0
	StoryWidth  = 432.0
	StoryHeight = 768.0
)

// MaxScale bounds the export scale so a bad option cannot allocate an
// enormous canvas.
const MaxScale = 8.0

// LogicalSize returns the layout size for a format.
func LogicalSize(format keepsake.Format) (width, height float64) {
	if format == keepsake.FormatStory {
		return StoryWidth, StoryHeight
	}
	return WideWidth, WideHeight
}

// PixelSize returns the rasterized size for a format at scale.
func PixelSize(format keepsake.Format, scale float64) image.Point {
	width, height := LogicalSize(format)
	return image.Pt(int(math.Round(width*scale)), int(math.Round(height*scale)))
}

// Card is a laid-out keepsake, ready to rasterize.
type Card struct {
	snapshot keepsake.Snapshot
	width    float64
	height   float64
}

func (card *Card) Snapshot() keepsake.Snapshot { return card.snapshot }

// Size is the card's logical size.
func (card *Card) Size() (width, height float64) { return card.width, card.height }

// CardRenderer paints keepsake cards. The zero value is ready to use
// and safe for concurrent use.
type CardRenderer struct{}

var _ keepsake.Renderer = (*CardRenderer)(nil)

// New returns a CardRenderer.
func New() *CardRenderer { return &CardRenderer{} }

// Render captures the snapshot and sizes the card for its format.
func (renderer *CardRenderer) Render(snapshot keepsake.Snapshot) keepsake.Card {
	width, height := LogicalSize(snapshot.Format)
	return &Card{snapshot: snapshot, width: width, height: height}
}

// Rasterize paints the card and encodes it as PNG.
func (renderer *CardRenderer) Rasterize(ctx context.Context, card keepsake.Card, options keepsake.ExportOptions) ([]byte, error) {
	img, err := renderer.Paint(ctx, card, options)
	if err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buffer.Bytes(), nil
}

// Paint rasterizes the card into a new image without encoding it.
func (renderer *CardRenderer) Paint(ctx context.Context, card keepsake.Card, options keepsake.ExportOptions) (*image.RGBA, error) {
	laidOut, ok := card.(*Card)
	if !ok {
		return nil, fmt.Errorf("card %T was not produced by this renderer", card)
	}
	if options.Scale <= 0 || options.Scale > MaxScale || math.IsNaN(options.Scale) {
		return nil, fmt.Errorf("scale %v out of range (0, %v]", options.Scale, MaxScale)
	}
	if laidOut.width <= 0 || laidOut.height <= 0 {
		return nil, errors.New("card has no size")
	}

	faces, err := newFaceSet(options.Scale)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	bounds := image.Rect(0, 0,
		int(math.Round(laidOut.width*options.Scale)),
		int(math.Round(laidOut.height*options.Scale)))
	p := &painter{dst: image.NewRGBA(bounds), scale: options.Scale, faces: faces}

	snapshot := laidOut.snapshot
	palette := snapshot.Theme.Palette()
	pixelWidth, pixelHeight := float64(bounds.Dx()), float64(bounds.Dy())
	glows := []glow{
		{cx: 0.2 * pixelWidth, cy: -0.1 * pixelHeight, rx: 1200 * options.Scale, ry: 500 * options.Scale, color: palette.GlowPrimary},
		{cx: 1.2 * pixelWidth, cy: 1.2 * pixelHeight, rx: 800 * options.Scale, ry: 400 * options.Scale, color: palette.GlowSecondary},
	}

	var layout cardLayout
	if snapshot.Format == keepsake.FormatStory {
		layout = storyLayout{}
	} else {
		layout = wideLayout{}
	}
	ribbon, ribbonRadius := layout.ribbon()
	panels := []panel{{
		mask:  roundedMask{bounds: p.rect(ribbon), radius: ribbonRadius * options.Scale},
		color: withAlpha(black, 0.3),
	}}

	if err := p.paintBackground(ctx, options.Background, glows, panels); err != nil {
		return nil, err
	}
	layout.paint(p, snapshot, accentColor(palette.Accent))
	if p.err != nil {
		return nil, p.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.dst, nil
}
