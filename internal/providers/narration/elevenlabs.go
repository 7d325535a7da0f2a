package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

const (
	defaultElevenBaseURL = "https://api.elevenlabs.io/v1"
	defaultElevenVoiceID = "21m00Tcm4TlvDq8ikWAM"
	defaultElevenModel   = "eleven_multilingual_v2"
	elevenTimeout        = 120 * time.Second
)

// ElevenLabsProvider synthesizes narration through the ElevenLabs
// text-to-speech API. Audio comes back as MP3.
type ElevenLabsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewElevenLabs(apiKey, baseURL string) *ElevenLabsProvider {
	if baseURL == "" {
		baseURL = defaultElevenBaseURL
	}
	return &ElevenLabsProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: elevenTimeout},
	}
}

func (p *ElevenLabsProvider) FileExt() string { return "mp3" }

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func (p *ElevenLabsProvider) Synthesize(ctx context.Context, script, voiceID string) ([]byte, error) {
	const op = "narration.elevenlabs"

	if voiceID == "" {
		voiceID = defaultElevenVoiceID
	}

	body, err := json.Marshal(ttsRequest{
		Text:    script,
		ModelID: defaultElevenModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", p.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.Synthesis(op, fmt.Errorf("tts returned status %d: %s", resp.StatusCode, detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}
	if len(audio) == 0 {
		return nil, apperrors.Synthesis(op, fmt.Errorf("empty audio response"))
	}
	return audio, nil
}

type voicesResponse struct {
	Voices []struct {
		VoiceID string            `json:"voice_id"`
		Name    string            `json:"name"`
		Labels  map[string]string `json:"labels"`
	} `json:"voices"`
}

func (p *ElevenLabsProvider) ListVoices(ctx context.Context) ([]models.VoiceOption, error) {
	const op = "narration.elevenlabs.voices"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/voices", nil)
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}
	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Synthesis(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Synthesis(op, fmt.Errorf("voices returned status %d", resp.StatusCode))
	}

	var parsed voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.Synthesis(op, err)
	}

	out := make([]models.VoiceOption, 0, len(parsed.Voices))
	for _, v := range parsed.Voices {
		out = append(out, models.VoiceOption{
			ID:     v.VoiceID,
			Name:   v.Name,
			Gender: v.Labels["gender"],
			Accent: v.Labels["accent"],
		})
	}
	return out, nil
}
