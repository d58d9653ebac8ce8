// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keepsake

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/keepsake/lib/capability"
)

// Card is a rendered layout handle. Only the Renderer that produced
// it knows how to rasterize it.
type Card interface {
	Snapshot() Snapshot
}

// Renderer turns a snapshot into a card and a card into PNG bytes.
type Renderer interface {
	Render(snapshot Snapshot) Card
	Rasterize(ctx context.Context, card Card, options ExportOptions) ([]byte, error)
}

// ShareMethod records which path a share took.
type ShareMethod string

const (
	ShareNative     ShareMethod = "native"
	ShareLink       ShareMethod = "link"
	ShareClipboard  ShareMethod = "clipboard"
	ShareOpenedFile ShareMethod = "opened-file"
)

// ShareResult describes a successful share.
type ShareResult struct {
	Method ShareMethod

	// Target is the link or file path that was opened, if any.
	Target string
}

// Exporter performs the side-effecting operations on snapshots. It is
// safe for concurrent use provided its capabilities are.
type Exporter struct {
	renderer     Renderer
	capabilities capability.Set
	logger       *slog.Logger
	tempDir      string
}

// NewExporter builds an Exporter from the renderer, capabilities,
// logger and temp directory in options.
func NewExporter(options Options) *Exporter {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{
		renderer:     options.Renderer,
		capabilities: options.Capabilities,
		logger:       logger,
		tempDir:      options.TempDir,
	}
}

// Capabilities returns the platform selection the exporter uses.
func (exporter *Exporter) Capabilities() capability.Set {
	return exporter.capabilities
}

// Digest is the hex BLAKE3-256 of an exported image, used to identify
// it in logs and machine output.
func Digest(png []byte) string {
	sum := blake3.Sum256(png)
	return hex.EncodeToString(sum[:])
}

// ExportImage renders and rasterizes the snapshot with its export
// policy. It works before generation; the card shows the placeholder
// ID.
func (exporter *Exporter) ExportImage(ctx context.Context, snapshot Snapshot) ([]byte, error) {
	png, err := exporter.exportImage(ctx, snapshot)
	if err != nil {
		return nil, exporter.fail(KindExport, "export", snapshot, err)
	}
	return png, nil
}

func (exporter *Exporter) exportImage(ctx context.Context, snapshot Snapshot) ([]byte, error) {
	if exporter.renderer == nil {
		return nil, errors.New("no renderer configured")
	}
	card := exporter.renderer.Render(snapshot)
	png, err := exporter.renderer.Rasterize(ctx, card, snapshot.ExportOptions())
	if err != nil {
		return nil, err
	}
	exporter.logger.Debug("ticket rasterized",
		"ticket", snapshot.TicketID(),
		"format", string(snapshot.Format),
		"bytes", len(png),
		"digest", Digest(png),
	)
	return png, nil
}

// Download exports the snapshot and writes it to dir under its
// DownloadName. An empty dir means the working directory.
func (exporter *Exporter) Download(ctx context.Context, snapshot Snapshot, dir string) (string, error) {
	png, err := exporter.exportImage(ctx, snapshot)
	if err != nil {
		return "", exporter.fail(KindExport, "download", snapshot, err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", exporter.fail(KindExport, "download", snapshot, err)
	}
	path := filepath.Join(dir, snapshot.DownloadName())
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", exporter.fail(KindExport, "download", snapshot, err)
	}
	exporter.logger.Info("ticket downloaded",
		"ticket", snapshot.TicketID(),
		"path", path,
		"digest", Digest(png),
	)
	return path, nil
}

// Share uses the native share sheet when there is one, and otherwise
// opens the messaging link.
func (exporter *Exporter) Share(ctx context.Context, snapshot Snapshot) (ShareResult, error) {
	if sharer, ok := exporter.capabilities.Sharer.Get(); ok {
		if err := sharer.Share(ctx, snapshot.ShareRequest()); err != nil {
			return ShareResult{}, exporter.fail(KindShare, "share", snapshot, err)
		}
		exporter.logger.Info("ticket shared", "ticket", snapshot.TicketID(), "method", string(ShareNative))
		return ShareResult{Method: ShareNative}, nil
	}

	opener, ok := exporter.capabilities.Opener.Get()
	if !ok {
		return ShareResult{}, exporter.fail(KindShare, "share", snapshot, capability.ErrUnavailable)
	}
	link := snapshot.ShareLink()
	if err := opener.Open(ctx, link); err != nil {
		return ShareResult{}, exporter.fail(KindShare, "share", snapshot, err)
	}
	exporter.logger.Info("ticket shared", "ticket", snapshot.TicketID(), "method", string(ShareLink))
	return ShareResult{Method: ShareLink, Target: link}, nil
}

// ShareImage exports the snapshot and puts the image on the clipboard.
// Without a clipboard it writes the image to a temp file and opens that
// instead. A clipboard that fails to take the image is a share failure.
func (exporter *Exporter) ShareImage(ctx context.Context, snapshot Snapshot) (ShareResult, error) {
	png, err := exporter.exportImage(ctx, snapshot)
	if err != nil {
		return ShareResult{}, exporter.fail(KindExport, "share image", snapshot, err)
	}

	if clipboard, ok := exporter.capabilities.ImageClipboard.Get(); ok {
		if err := clipboard.WriteImage(ctx, png); err != nil {
			return ShareResult{}, exporter.fail(KindShare, "share image", snapshot, err)
		}
		exporter.logger.Info("ticket image copied", "ticket", snapshot.TicketID(), "digest", Digest(png))
		return ShareResult{Method: ShareClipboard}, nil
	}

	opener, ok := exporter.capabilities.Opener.Get()
	if !ok {
		return ShareResult{}, exporter.fail(KindShare, "share image", snapshot, capability.ErrUnavailable)
	}
	path, err := exporter.writeTemp(snapshot, png)
	if err != nil {
		return ShareResult{}, exporter.fail(KindShare, "share image", snapshot, err)
	}
	if err := opener.Open(ctx, path); err != nil {
		return ShareResult{}, exporter.fail(KindShare, "share image", snapshot, err)
	}
	exporter.logger.Info("ticket image opened", "ticket", snapshot.TicketID(), "path", path)
	return ShareResult{Method: ShareOpenedFile, Target: path}, nil
}

func (exporter *Exporter) writeTemp(snapshot Snapshot, png []byte) (string, error) {
	file, err := os.CreateTemp(exporter.tempDir, "keepsake-*-"+snapshot.Format.FileSuffix()+".png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	if _, err := file.Write(png); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	return file.Name(), nil
}

func (exporter *Exporter) fail(kind Kind, op string, snapshot Snapshot, err error) error {
	exporter.logger.Warn("ticket "+op+" failed",
		"op", op,
		"ticket", snapshot.TicketID(),
		"error", err,
	)
	return &Error{Kind: kind, Op: op, Err: err}
}
