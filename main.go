// ABOUTME: Entry point for the xsheet application
// ABOUTME: Parses commands and routes to the editor, sheet creation or inspection

// Package main provides the entry point for xsheet, a frame-by-frame animation exposure sheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"xsheet/config"
	"xsheet/sheet"
	"xsheet/tui"
)

func main() {
	cmd := &cli.Command{
		Name:  "xsheet",
		Usage: "Frame-by-frame animation exposure sheet with lightbox and pencil test",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to preferences file",
				DefaultText: "./xsheet.toml or ~/.config/xsheet/config.toml",
				Sources:     cli.EnvVars("XSHEET_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "write debug logging to " + debugLogFile,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "edit",
				Usage:     "Open a sheet in the interactive editor (created on save if missing)",
				ArgsUsage: "<sheet.json>",
				Action:    runEdit,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "edit without writing the sheet or preferences",
					},
				},
			},
			{
				Name:      "new",
				Usage:     "Create a sheet of empty frames",
				ArgsUsage: "<sheet.json>",
				Action:    runNew,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "frames",
						Usage: "number of frames (default from preferences)",
					},
					&cli.IntFlag{
						Name:  "framerate",
						Usage: "frames per second (default from preferences)",
					},
					&cli.StringFlag{
						Name:  "soundtrack",
						Usage: "audio file to time against, relative to the sheet",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing sheet",
					},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Print a sheet's frames and the lightbox seen from one frame",
				ArgsUsage: "<sheet.json>",
				Action:    runInspect,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "frame",
						Usage: "1-based frame to preview the lightbox from",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("xsheet error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runEdit runs the editor alongside the preferences watcher
func runEdit(ctx context.Context, cmd *cli.Command) error {
	path, err := sheetArg(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := NewLogger(cmd.Bool("debug"), debugLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	configPath, cfg := LoadPreferences(cmd.String("config"), logger)
	shared := config.NewShared(cfg)

	// Holds at most the latest reload; older ones are superseded
	reloads := make(chan config.Config, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := config.Watch(gCtx, configPath, logger, func(c config.Config) {
			shared.Update(c)

			select {
			case <-reloads:
			default:
			}

			reloads <- c
		})
		if err != nil {
			// Editing works without live reload
			logger.Warn("preferences watcher unavailable", slog.String("error", err.Error()))
		}

		return nil
	})

	g.Go(func() error {
		defer cancel()

		return tui.Run(tui.Options{
			SheetPath: path,
			DryRun:    cmd.Bool("dry-run"),
		}, tui.Dependencies{
			Config:     shared,
			ConfigPath: configPath,
			Reloads:    reloads,
			SaveSheet:  sheet.Save,
			Logger:     logger,
		})
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	return nil
}

// runNew creates a sheet using the preferences for unset flags
func runNew(_ context.Context, cmd *cli.Command) error {
	path, err := sheetArg(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := NewLogger(cmd.Bool("debug"), debugLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	_, cfg := LoadPreferences(cmd.String("config"), logger)

	frames := int(cmd.Int("frames"))
	if frames == 0 {
		frames = cfg.Sheet.DefaultLength
	}

	framerate := int(cmd.Int("framerate"))
	if framerate == 0 {
		framerate = cfg.Sheet.Framerate
	}

	return RunNew(os.Stdout, NewOptions{
		Path:       path,
		Frames:     frames,
		Framerate:  framerate,
		Soundtrack: cmd.String("soundtrack"),
		Force:      cmd.Bool("force"),
	})
}

// runInspect prints a sheet
func runInspect(_ context.Context, cmd *cli.Command) error {
	path, err := sheetArg(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := NewLogger(cmd.Bool("debug"), debugLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	_, cfg := LoadPreferences(cmd.String("config"), logger)

	return RunInspect(os.Stdout, InspectOptions{
		Path:     path,
		Frame:    int(cmd.Int("frame")),
		Lightbox: cfg.Lightbox,
	})
}
