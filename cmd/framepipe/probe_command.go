package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"framepipe/internal/media/probe"
)

type probeStreamView struct {
	Kind        string  `json:"kind"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FrameRate   float64 `json:"frame_rate"`
	FramesCount int64   `json:"frames_count"`
}

type probeView struct {
	Source          string            `json:"source"`
	DurationSeconds float64           `json:"duration_seconds"`
	Streams         []probeStreamView `json:"streams"`
	Tags            map[string]string `json:"tags,omitempty"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file's streams and container metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			info, err := probe.Inspect(cmd.Context(), args[0], cfg.Tools.FFprobe)
			if err != nil {
				return err
			}

			view := probeView{
				Source:          args[0],
				DurationSeconds: info.Duration.Seconds(),
				Tags:            info.Tags,
			}
			for _, stream := range info.Streams {
				if video, ok := stream.(probe.VideoStream); ok {
					view.Streams = append(view.Streams, probeStreamView{
						Kind:        "video",
						Width:       video.Width,
						Height:      video.Height,
						FrameRate:   video.FrameRate,
						FramesCount: video.FramesCount,
					})
				}
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:   %s\n", view.Source)
			fmt.Fprintf(out, "Duration: %s\n", info.Duration)
			if _, ok := info.PrimaryVideoStream(); !ok {
				fmt.Fprintln(out, "Primary:  none (zero or multiple video streams)")
			}

			rows := make([][]string, 0, len(view.Streams))
			for _, stream := range view.Streams {
				rows = append(rows, []string{
					stream.Kind,
					fmt.Sprintf("%dx%d", stream.Width, stream.Height),
					strconv.FormatFloat(stream.FrameRate, 'f', 3, 64),
					strconv.FormatInt(stream.FramesCount, 10),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Geometry", "FPS", "Frames"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}
