// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type weight int

const (
	regular weight = iota
	medium
	bold
)

var (
	parseOnce sync.Once
	parsed    map[weight]*opentype.Font
	parseErr  error
)

func typefaces() (map[weight]*opentype.Font, error) {
	parseOnce.Do(func() {
		sources := map[weight][]byte{
			regular: goregular.TTF,
			medium:  gomedium.TTF,
			bold:    gobold.TTF,
		}
		parsed = make(map[weight]*opentype.Font, len(sources))
		for weight, data := range sources {
			typeface, err := opentype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parsing Go font: %w", err)
				return
			}
			parsed[weight] = typeface
		}
	})
	return parsed, parseErr
}

type faceKey struct {
	weight weight
	size   float64
}

// faceSet caches faces for a single rasterization. Not safe for
// concurrent use.
type faceSet struct {
	typefaces map[weight]*opentype.Font
	scale     float64
	faces     map[faceKey]font.Face
}

func newFaceSet(scale float64) (*faceSet, error) {
	typefaces, err := typefaces()
	if err != nil {
		return nil, err
	}
	return &faceSet{
		typefaces: typefaces,
		scale:     scale,
		faces:     make(map[faceKey]font.Face),
	}, nil
}

// face returns the face for a logical size in the given weight.
func (set *faceSet) face(weight weight, size float64) (font.Face, error) {
	key := faceKey{weight: weight, size: size}
	if face, ok := set.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(set.typefaces[weight], &opentype.FaceOptions{
		Size:    size * set.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %.0fpx face: %w", size, err)
	}
	set.faces[key] = face
	return face, nil
}

func (set *faceSet) Close() {
	for _, face := range set.faces {
		face.Close()
	}
	set.faces = nil
}

// toLogical converts a fixed-point pixel length back to logical units.
func (set *faceSet) toLogical(length fixed.Int26_6) float64 {
	return float64(length) / 64 / set.scale
}
