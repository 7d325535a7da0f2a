// Package narration implements the voiceover synthesizers. The tone
// provider renders a placeholder sine tone sized to the script so the
// rest of the pipeline can run without an external TTS account; the
// elevenlabs provider calls the real text-to-speech API.
package narration

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

const (
	sampleRate     = 22050
	secondsPerWord = 0.4
	minToneSecs    = 1.0
	maxToneSecs    = 60.0
)

var toneVoices = []models.VoiceOption{
	{ID: "tone-low", Name: "Low Tone", Gender: "neutral", Accent: "none"},
	{ID: "tone-mid", Name: "Mid Tone", Gender: "neutral", Accent: "none"},
	{ID: "tone-high", Name: "High Tone", Gender: "neutral", Accent: "none"},
}

var toneFreqs = map[string]float64{
	"tone-low":  220,
	"tone-mid":  440,
	"tone-high": 880,
}

// ToneProvider synthesizes a mono 16-bit PCM WAV sine tone whose length
// tracks the script's word count.
type ToneProvider struct{}

func NewTone() *ToneProvider { return &ToneProvider{} }

func (p *ToneProvider) FileExt() string { return "wav" }

func (p *ToneProvider) ListVoices(_ context.Context) ([]models.VoiceOption, error) {
	out := make([]models.VoiceOption, len(toneVoices))
	copy(out, toneVoices)
	return out, nil
}

func (p *ToneProvider) Synthesize(_ context.Context, script, voiceID string) ([]byte, error) {
	if strings.TrimSpace(script) == "" {
		return nil, apperrors.Synthesis("narration.tone", fmt.Errorf("empty script"))
	}

	freq := toneFreqs["tone-mid"]
	if voiceID != "" {
		f, ok := toneFreqs[voiceID]
		if !ok {
			return nil, apperrors.Synthesis("narration.tone", fmt.Errorf("unknown voice: %s", voiceID))
		}
		freq = f
	}

	secs := float64(len(strings.Fields(script))) * secondsPerWord
	secs = math.Min(math.Max(secs, minToneSecs), maxToneSecs)

	return renderWAV(freq, secs), nil
}

// renderWAV writes a canonical 44-byte RIFF header followed by the
// samples. Amplitude stays well under full scale to avoid clipping once
// the track is mixed under the video.
func renderWAV(freq, secs float64) []byte {
	n := int(secs * sampleRate)
	dataLen := n * 2 // 16-bit mono

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))          // chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))           // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))           // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))           // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))          // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))

	const amplitude = 0.3 * math.MaxInt16
	for i := 0; i < n; i++ {
		sample := int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
		binary.Write(&buf, binary.LittleEndian, sample)
	}

	return buf.Bytes()
}
