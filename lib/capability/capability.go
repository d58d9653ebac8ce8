// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when an operation needs a capability the
// platform does not provide.
var ErrUnavailable = errors.New("capability unavailable")

// Capability holds an implementation of T or records that the
// platform has none. It is decided once at startup and passed to the
// view-model, which branches on Get instead of probing the platform.
type Capability[T any] struct {
	implementation T
	available      bool
}

// Available wraps a working implementation.
func Available[T any](implementation T) Capability[T] {
	return Capability[T]{implementation: implementation, available: true}
}

// Unavailable returns the empty variant.
func Unavailable[T any]() Capability[T] {
	return Capability[T]{}
}

// Get returns the implementation and whether there is one.
func (capability Capability[T]) Get() (T, bool) {
	return capability.implementation, capability.available
}

// IsAvailable reports whether an implementation is present.
func (capability Capability[T]) IsAvailable() bool {
	return capability.available
}

// ShareRequest is the payload handed to a native share sheet.
type ShareRequest struct {
	Title string
	Text  string
	URL   string
}

// Sharer hands text to the platform's native share sheet.
type Sharer interface {
	Share(ctx context.Context, request ShareRequest) error
}

// Opener opens a URL or a local file in the user's default viewer.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// ImageClipboard places PNG bytes on the system clipboard as an image.
type ImageClipboard interface {
	WriteImage(ctx context.Context, png []byte) error
}

// TextClipboard places plain text on the clipboard.
type TextClipboard interface {
	WriteText(ctx context.Context, text string) error
}

// SharerFunc adapts a function to Sharer.
type SharerFunc func(ctx context.Context, request ShareRequest) error

// Share calls the function.
func (function SharerFunc) Share(ctx context.Context, request ShareRequest) error {
	return function(ctx, request)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, target string) error

// Open calls the function.
func (function OpenerFunc) Open(ctx context.Context, target string) error {
	return function(ctx, target)
}

// ImageClipboardFunc adapts a function to ImageClipboard.
type ImageClipboardFunc func(ctx context.Context, png []byte) error

// WriteImage calls the function.
func (function ImageClipboardFunc) WriteImage(ctx context.Context, png []byte) error {
	return function(ctx, png)
}

// Set is the capability selection made at startup.
type Set struct {
	Sharer         Capability[Sharer]
	Opener         Capability[Opener]
	ImageClipboard Capability[ImageClipboard]
	TextClipboard  Capability[TextClipboard]
}

// None returns a Set with every capability unavailable. Tests start
// from it and switch on only what they exercise.
func None() Set {
	return Set{
		Sharer:         Unavailable[Sharer](),
		Opener:         Unavailable[Opener](),
		ImageClipboard: Unavailable[ImageClipboard](),
		TextClipboard:  Unavailable[TextClipboard](),
	}
}
