package script

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

func product() *models.ProductData {
	return &models.ProductData{
		Title:    "Trail Mug 350ml",
		Price:    "$24.50",
		Benefits: []string{"Keeps drinks hot for 6 hours", "Fits every cup holder"},
		Reviews: []models.Review{
			{Rating: 5, Text: "Coffee still hot at noon"},
		},
	}
}

func TestTemplateScriptDeterministic(t *testing.T) {
	p := NewTemplate()
	prefs := models.Preferences{BrandVoice: models.VoicePlayful}

	a, err := p.GenerateScript(context.Background(), "unbox_benefit", product(), prefs)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.GenerateScript(context.Background(), "unbox_benefit", product(), prefs)
	if a != b {
		t.Error("same inputs should produce identical scripts")
	}
	if !strings.Contains(a, "Trail Mug 350ml") {
		t.Errorf("script should mention the product: %q", a)
	}
	if !strings.Contains(a, "$24.50") {
		t.Errorf("script should mention the price: %q", a)
	}
}

func TestTemplateScriptPerTemplate(t *testing.T) {
	p := NewTemplate()
	prefs := models.Preferences{BrandVoice: models.VoiceMinimal}

	cases := []struct {
		template string
		want     string
	}{
		{"three_reasons", "Reason 1:"},
		{"testimonial_mash", "One customer said"},
		{"problem_solution", "tired of settling"},
		{"unbox_benefit", "Unboxing"},
	}
	for _, tc := range cases {
		got, err := p.GenerateScript(context.Background(), tc.template, product(), prefs)
		if err != nil {
			t.Fatalf("%s: %v", tc.template, err)
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("%s: script %q missing %q", tc.template, got, tc.want)
		}
	}
}

func TestTemplateVoiceChangesCopy(t *testing.T) {
	p := NewTemplate()
	ctx := context.Background()

	playful, _ := p.GenerateCTA(ctx, product(), models.Preferences{BrandVoice: models.VoicePlayful})
	clinical, _ := p.GenerateCTA(ctx, product(), models.Preferences{BrandVoice: models.VoiceClinical})
	if playful == clinical {
		t.Error("brand voice should change the CTA copy")
	}
}

func TestTemplateUnknownVoiceFallsBack(t *testing.T) {
	p := NewTemplate()

	hook, err := p.GenerateHook(context.Background(), product(), models.Preferences{BrandVoice: "operatic"})
	if err != nil {
		t.Fatal(err)
	}
	if hook == "" {
		t.Error("unknown voice should still produce a hook")
	}
}

func TestOpenAIGenerateScript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("messages = %d, want system + user", len(req.Messages))
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "  Generated narration.  "}}},
		})
	}))
	defer srv.Close()

	p := NewOpenAI("test-key", "", srv.URL)
	got, err := p.GenerateScript(context.Background(), "unbox_benefit", product(), models.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Generated narration." {
		t.Errorf("script = %q", got)
	}
}

func TestOpenAIAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	p := NewOpenAI("bad-key", "", srv.URL)
	_, err := p.GenerateHook(context.Background(), product(), models.Preferences{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCode(err, apperrors.CodeGeneration) {
		t.Errorf("code = %s, want GENERATION_ERROR", apperrors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error should carry the api message: %v", err)
	}
}

func TestFactory(t *testing.T) {
	t.Run("default is template", func(t *testing.T) {
		t.Setenv("SCRIPT_PROVIDER", "")
		p, err := New()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := p.(*TemplateProvider); !ok {
			t.Errorf("got %T, want *TemplateProvider", p)
		}
	})

	t.Run("openai requires key", func(t *testing.T) {
		t.Setenv("SCRIPT_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "")
		if _, err := New(); err == nil {
			t.Error("expected missing key error")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("SCRIPT_PROVIDER", "quill")
		if _, err := New(); err == nil || !strings.Contains(err.Error(), "quill") {
			t.Errorf("expected unknown provider error, got %v", err)
		}
	})
}
