package compose

import (
	"fmt"
	"strings"
)

// Render target: fixed 9:16 vertical frame, capped bitrates.
const (
	frameWidth   = 1080
	frameHeight  = 1920
	frameRate    = 30
	videoBitrate = "2000k"
	audioBitrate = "128k"

	// Bold white fill with a black outline: legible over arbitrary footage.
	subtitleStyle = "FontSize=24,Bold=1,PrimaryColour=&Hffffff,OutlineColour=&H000000,Outline=2"
)

// buildArgs constructs the complete ffmpeg invocation for one composition.
// Each shot maps to one stock asset (round-robin), trimmed to its duration
// and re-based to presentation time zero, then everything is concatenated
// and the caption track is burned in. With no stock available the graph
// degrades to a black source sized to the shot list, so the render still
// runs cleanly.
func buildArgs(c *Composition, stock []string, vttPath, outPath string) []string {
	args := []string{"-hide_banner", "-nostdin", "-y"}

	var filters []string
	useSegments := len(c.Shots) > 0 && len(stock) > 0

	if useSegments {
		for i := range c.Shots {
			args = append(args, "-i", stock[i%len(stock)])
		}

		labels := make([]string, 0, len(c.Shots))
		for i, s := range c.Shots {
			filters = append(filters, fmt.Sprintf(
				"[%d:v]trim=duration=%.3f,setpts=PTS-STARTPTS,scale=%d:%d,setsar=1[v%d]",
				i, s.Duration(), frameWidth, frameHeight, i,
			))
			labels = append(labels, fmt.Sprintf("[v%d]", i))
		}
		filters = append(filters, fmt.Sprintf(
			"%sconcat=n=%d:v=1:a=0[cat]", strings.Join(labels, ""), len(c.Shots),
		))
		filters = append(filters, fmt.Sprintf(
			"[cat]subtitles=%s:force_style='%s'[vout]", vttPath, subtitleStyle,
		))
	} else {
		// Degenerate case: no usable segments. A black base keeps the
		// caption/audio-only artifact renderable.
		dur := c.TotalDuration().Seconds()
		if dur <= 0 {
			dur = 1
		}
		args = append(args,
			"-f", "lavfi",
			"-t", fmt.Sprintf("%.3f", dur),
			"-i", fmt.Sprintf("color=c=black:s=%dx%d:r=%d", frameWidth, frameHeight, frameRate),
		)
		filters = append(filters, fmt.Sprintf(
			"[0:v]subtitles=%s:force_style='%s'[vout]", vttPath, subtitleStyle,
		))
	}

	audioIdx := -1
	if c.NarrationPath != "" {
		audioIdx = 1
		if useSegments {
			audioIdx = len(c.Shots)
		}
		args = append(args, "-i", c.NarrationPath)
	}

	args = append(args,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", "[vout]",
	)

	if audioIdx >= 0 {
		args = append(args,
			"-map", fmt.Sprintf("%d:a", audioIdx),
			"-c:a", "aac",
			"-b:a", audioBitrate,
			"-shortest",
		)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-b:v", videoBitrate,
		"-r", fmt.Sprintf("%d", frameRate),
		outPath,
	)

	return args
}
