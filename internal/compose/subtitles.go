package compose

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FormatTimestamp renders a second offset as a WebVTT timestamp with
// millisecond precision (HH:MM:SS.mmm).
func FormatTimestamp(seconds float64) string {
	ms := int64(seconds*1000 + 0.5)

	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp: %s", ts)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %s", ts)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %s", ts)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %s", ts)
	}

	return float64(h)*3600 + float64(m)*60 + sec, nil
}

// WriteVTT renders the caption list as a WebVTT subtitle track. Captions are
// assumed already validated: sorted, non-overlapping.
func WriteVTT(path string, captions []Caption) error {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	for i, c := range captions {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(c.StartTime), FormatTimestamp(c.EndTime))
		b.WriteString(c.Text)
		b.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
