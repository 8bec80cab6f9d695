package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"framepipe/internal/catalog"
	"framepipe/internal/media/extract"
	"framepipe/internal/media/frame"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var interval time.Duration
	var limit int

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Decode frames from a media file into images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, ctx, args[0], outputDir, interval, limit)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write frames into (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Decode one frame per interval instead of every frame")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many frames (0 = all)")
	return cmd
}

func runExtract(cmd *cobra.Command, ctx *commandContext, source, outputDir string, interval time.Duration, limit int) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	logger = logger.With("component", "extract")

	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Extract.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", outputDir, err)
	}

	// One extraction per output directory at a time; interleaved frame
	// numbering from concurrent runs would corrupt both.
	lock := flock.New(filepath.Join(outputDir, ".framepipe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another extraction is already writing to %s", outputDir)
	}
	defer func() { _ = lock.Unlock() }()

	if interval == 0 {
		interval = cfg.SamplingInterval()
	}
	opts := extract.Options{
		SamplingInterval: interval,
		FFmpegPath:       cfg.Tools.FFmpeg,
		FFprobePath:      cfg.Tools.FFprobe,
	}

	video, err := extract.Open(cmd.Context(), source, opts)
	if err != nil {
		return err
	}
	defer video.Close()

	stream := video.Stream()
	logger.Info("decode started",
		"source", source,
		"geometry", fmt.Sprintf("%dx%d", stream.Width, stream.Height),
		"fps", stream.FrameRate,
		"duration", video.Duration())

	var store *catalog.Store
	var run catalog.Run
	if cfg.Catalog.Enabled {
		store, err = catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err = store.StartRun(cmd.Context(), source, stream.Width, stream.Height)
		if err != nil {
			return err
		}
	}

	count, extractErr := writeFrames(cmd.Context(), video, store, run.ID, outputDir, limit, logger)

	if store != nil {
		status := catalog.StatusCompleted
		if extractErr != nil {
			status = catalog.StatusFailed
		}
		if err := store.FinishRun(cmd.Context(), run.ID, status, count); err != nil {
			logger.Warn("catalog update failed", "error", err)
		}
	}
	if extractErr != nil {
		return extractErr
	}

	logger.Info("decode finished", "frames", count, "output", outputDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d frames to %s\n", count, outputDir)
	return nil
}

func writeFrames(ctx context.Context, video *extract.Video, store *catalog.Store, runID, outputDir string, limit int, logger *slog.Logger) (int, error) {
	count := 0
	for limit <= 0 || count < limit {
		f, err := video.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		path := filepath.Join(outputDir, fmt.Sprintf("frame_%06d.png", count))
		if err := writeImage(path, f.Image); err != nil {
			return count, err
		}
		if store != nil {
			if err := store.RecordFrame(ctx, runID, count, f.TimeOffset.Seconds(), path); err != nil {
				return count, err
			}
		}
		logger.Debug("frame written", "index", count, "pts", f.TimeOffset)
		count++
	}
	return count, nil
}

func writeImage(path string, image *frame.Buffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(file, image); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close frame file: %w", err)
	}
	return nil
}
