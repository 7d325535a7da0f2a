// Package compose renders a Composition (script, timed shot list and caption
// track) into one synchronized 9:16 video file using ffmpeg as the
// transcoding backend.
package compose

import (
	"fmt"
	"time"
)

// Composition is the full input for one render: built fresh per template per
// job, never shared across jobs.
type Composition struct {
	Template string
	Script   string
	Shots    []Shot
	Captions []Caption

	// NarrationPath points at the synthesized narration track. Empty means
	// video-only output; a missing track never blocks the render.
	NarrationPath string

	OutputDir string

	// KeepCaptionFile leaves the companion .vtt next to the video instead of
	// deleting it after the mux (caption add-on deliverable).
	KeepCaptionFile bool
}

// Shot is one timed visual segment.
type Shot struct {
	ID        string
	StartTime float64
	EndTime   float64
	Visual    string
	Text      string
}

// Caption is one timed subtitle cue.
type Caption struct {
	StartTime float64
	EndTime   float64
	Text      string
	Position  string
}

func (s Shot) Duration() float64 { return s.EndTime - s.StartTime }

// TotalDuration is the length of the concatenated output stream: the sum of
// the individual shot durations.
func (c *Composition) TotalDuration() time.Duration {
	var total float64
	for _, s := range c.Shots {
		total += s.Duration()
	}
	return time.Duration(total * float64(time.Second))
}

// Validate enforces the ordering invariants: shot and caption ranges sorted
// ascending by start time, non-overlapping, each with a positive duration.
func (c *Composition) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("composition has no template")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("composition has no output dir")
	}

	prevEnd := 0.0
	for i, s := range c.Shots {
		if s.EndTime <= s.StartTime {
			return fmt.Errorf("shot %d: end %.3f not after start %.3f", i, s.EndTime, s.StartTime)
		}
		if s.StartTime < prevEnd {
			return fmt.Errorf("shot %d: starts at %.3f before previous end %.3f", i, s.StartTime, prevEnd)
		}
		prevEnd = s.EndTime
	}

	prevEnd = 0.0
	for i, cc := range c.Captions {
		if cc.EndTime <= cc.StartTime {
			return fmt.Errorf("caption %d: end %.3f not after start %.3f", i, cc.EndTime, cc.StartTime)
		}
		if cc.StartTime < prevEnd {
			return fmt.Errorf("caption %d: starts at %.3f before previous end %.3f", i, cc.StartTime, prevEnd)
		}
		prevEnd = cc.EndTime
	}

	return nil
}
