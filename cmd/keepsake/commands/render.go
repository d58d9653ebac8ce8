// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/keepsake/cmd/keepsake/cli"
	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
	"github.com/bureau-foundation/keepsake/lib/render"
)

type renderParams struct {
	cli.JSONOutput
	configParams
	ticketParams
	Out  string `json:"out" flag:"out,o" desc:"output .png file or directory (default: paths.output_dir)"`
	Open bool   `json:"open" flag:"open" desc:"open the written image in the default viewer"`
}

// renderResult is the JSON form of a rendered card.
type renderResult struct {
	TicketID string `json:"ticket_id"`
	Path     string `json:"path"`
	Theme    string `json:"theme"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int    `json:"bytes"`
	Digest   string `json:"digest"`
}

// RenderCommand generates a ticket and writes its PNG without the
// interactive editor.
func RenderCommand() *cli.Command {
	var params renderParams
	return &cli.Command{
		Name:    "render",
		Summary: "Generate a ticket and write its PNG",
		Description: `Generate a ticket for a name and export the card as a PNG.

With no --out the image goes to the configured output directory under
its download name. An --out ending in .png is used as the file path;
anything else is treated as a directory.`,
		Usage: "keepsake render --first <name> --last <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Wide card with the default theme",
				Command:     "keepsake render --first Ayşe --last Yılmaz",
			},
			{
				Description: "Amber story card to a chosen file",
				Command:     "keepsake render --first Ayşe --last Yılmaz --theme kehri --format story --out ayse.png",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("render", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runRender(ctx, &params, logger)
		},
	}
}

func runRender(ctx context.Context, params *renderParams, logger *slog.Logger) error {
	cfg, err := params.load()
	if err != nil {
		return err
	}
	event, err := eventFor(cfg, "")
	if err != nil {
		return err
	}
	theme, format, _, err := params.presentation(cfg)
	if err != nil {
		return err
	}

	capabilities := capability.None()
	if params.Open {
		capabilities = capability.Detect(cfg.DetectOptions())
	}

	viewModel := keepsake.New(keepsake.Options{
		Event:        event,
		Theme:        theme,
		Format:       format,
		Renderer:     render.New(),
		Capabilities: capabilities,
		Logger:       logger,
		TempDir:      cfg.Paths.TempDir,
	})
	ticket, err := generate(viewModel, &params.ticketParams)
	if err != nil {
		return err
	}
	viewModel.SetCountdown(formatCountdown(event))

	png, err := viewModel.ExportImage(ctx)
	if err != nil {
		return cli.Internal("%w", err)
	}

	path := outputPath(params.Out, cfg.Paths.OutputDir, viewModel.DownloadName())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cli.Internal("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return cli.Internal("writing %s: %w", path, err)
	}

	digest := keepsake.Digest(png)
	logger.Info("ticket rendered", "ticket", ticket.ID, "path", path, "digest", digest)

	if params.Open {
		opener, ok := capabilities.Opener.Get()
		if !ok {
			return cli.Unavailable("no viewer available to open %s", path).
				WithHint("The image was written; open it manually.")
		}
		if err := opener.Open(ctx, path); err != nil {
			return cli.Internal("opening %s: %w", path, err)
		}
	}

	size := render.PixelSize(format, format.Scale())
	result := renderResult{
		TicketID: ticket.ID,
		Path:     path,
		Theme:    string(theme),
		Format:   string(format),
		Width:    size.X,
		Height:   size.Y,
		Bytes:    len(png),
		Digest:   digest,
	}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	fmt.Fprintf(cli.Stdout, "%s  %s  (%dx%d, %s)\n", ticket.ID, path, size.X, size.Y, format.Label())
	return nil
}

// outputPath resolves --out: a .png path is used as is, anything else
// names a directory that receives the download name.
func outputPath(out, defaultDir, downloadName string) string {
	if strings.EqualFold(filepath.Ext(out), ".png") {
		return out
	}
	dir := out
	if dir == "" {
		dir = defaultDir
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, downloadName)
}
