// Package script implements the narration copy generators. The template
// provider assembles copy deterministically from canned fragments keyed by
// brand voice; the openai provider delegates to a chat completion API.
package script

import (
	"context"
	"fmt"
	"strings"

	"promoreel/internal/models"
)

// TemplateProvider produces scripts without any external service call.
// Same product + same preferences always yields the same copy.
type TemplateProvider struct{}

func NewTemplate() *TemplateProvider { return &TemplateProvider{} }

var hooks = map[models.BrandVoice][]string{
	models.VoicePlayful: {
		"Okay, stop scrolling. You need to see %s.",
		"This is your sign to finally try %s.",
	},
	models.VoiceMinimal: {
		"%s.",
		"Meet %s.",
	},
	models.VoiceClinical: {
		"Here is what %s actually does.",
		"An honest look at %s.",
	},
}

var ctas = map[models.BrandVoice][]string{
	models.VoicePlayful: {
		"Grab yours before they're gone. Link in bio.",
		"Your future self says thanks. Tap the link.",
	},
	models.VoiceMinimal: {
		"Available now.",
		"Link below.",
	},
	models.VoiceClinical: {
		"Full details at the link.",
		"See the product page for specifications.",
	},
}

func (p *TemplateProvider) GenerateHook(_ context.Context, product *models.ProductData, prefs models.Preferences) (string, error) {
	pool := voicePool(hooks, prefs.BrandVoice)
	return fmt.Sprintf(pool[pick(product.Title, len(pool))], product.Title), nil
}

func (p *TemplateProvider) GenerateCTA(_ context.Context, product *models.ProductData, prefs models.Preferences) (string, error) {
	pool := voicePool(ctas, prefs.BrandVoice)
	return pool[pick(product.Title, len(pool))], nil
}

func (p *TemplateProvider) GenerateScript(ctx context.Context, template string, product *models.ProductData, prefs models.Preferences) (string, error) {
	hook, _ := p.GenerateHook(ctx, product, prefs)
	cta, _ := p.GenerateCTA(ctx, product, prefs)

	var body []string
	switch template {
	case "problem_solution":
		body = append(body, fmt.Sprintf("If you're tired of settling, %s fixes that.", product.Title))
		body = append(body, benefitsSentence(product, prefs))
	case "three_reasons":
		for i, b := range topBenefits(product, prefs, 3) {
			body = append(body, fmt.Sprintf("Reason %d: %s.", i+1, strings.TrimRight(b, ".")))
		}
	case "testimonial_mash":
		for _, r := range product.Reviews {
			body = append(body, fmt.Sprintf("One customer said: %s.", strings.TrimRight(r.Text, ".")))
		}
		if len(product.Reviews) == 0 {
			body = append(body, benefitsSentence(product, prefs))
		}
	default: // unbox_benefit y cualquier plantilla futura
		body = append(body, fmt.Sprintf("Unboxing %s.", product.Title))
		body = append(body, benefitsSentence(product, prefs))
	}

	if product.Price != "" {
		body = append(body, fmt.Sprintf("All of this for %s.", product.Price))
	}

	parts := append([]string{hook}, body...)
	parts = append(parts, cta)
	return strings.Join(parts, " "), nil
}

func benefitsSentence(product *models.ProductData, prefs models.Preferences) string {
	bs := topBenefits(product, prefs, 3)
	if len(bs) == 0 {
		return "It just works."
	}
	return strings.Join(bs, ". ") + "."
}

func topBenefits(product *models.ProductData, prefs models.Preferences, n int) []string {
	out := make([]string, 0, n)
	for _, b := range prefs.KeyBenefits {
		if len(out) < n {
			out = append(out, strings.TrimRight(b, "."))
		}
	}
	for _, b := range product.Benefits {
		if len(out) < n {
			out = append(out, strings.TrimRight(b, "."))
		}
	}
	return out
}

func voicePool[T any](m map[models.BrandVoice][]T, v models.BrandVoice) []T {
	if pool, ok := m[v]; ok {
		return pool
	}
	return m[models.VoicePlayful]
}

// pick selects a stable index from the title so a given product always
// gets the same variant.
func pick(seed string, n int) int {
	var h uint32
	for _, r := range seed {
		h = h*31 + uint32(r)
	}
	return int(h % uint32(n))
}
