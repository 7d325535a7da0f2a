// Package templates defines the four fixed video templates and builds render
// Compositions from product data + customer preferences. Templates are a
// closed set owned by the product, so they live in code rather than rows.
package templates

import (
	"fmt"
	"strings"

	"promoreel/internal/compose"
	"promoreel/internal/models"
)

const (
	UnboxBenefit    = "unbox_benefit"
	ProblemSolution = "problem_solution"
	ThreeReasons    = "three_reasons"
	TestimonialMash = "testimonial_mash"
)

// All returns every template, in render order.
func All() []string {
	return []string{UnboxBenefit, ProblemSolution, ThreeReasons, TestimonialMash}
}

func Valid(template string) bool {
	for _, t := range All() {
		if t == template {
			return true
		}
	}
	return false
}

func Default() string { return UnboxBenefit }

type shotDef struct {
	id     string
	start  float64
	end    float64
	visual string
	text   func(p *models.ProductData, prefs models.Preferences) string
}

var defs = map[string][]shotDef{
	UnboxBenefit: {
		{"hook", 0, 2.5, "hands opening the package", func(p *models.ProductData, _ models.Preferences) string {
			return "POV: your " + p.Title + " just arrived"
		}},
		{"unbox", 2.5, 6, "product reveal close-up", func(p *models.ProductData, _ models.Preferences) string {
			return p.Title
		}},
		{"benefit", 6, 9.5, "product in use", func(p *models.ProductData, prefs models.Preferences) string {
			return benefit(p, prefs, 0)
		}},
		{"cta", 9.5, 12, "product with price overlay", func(p *models.ProductData, _ models.Preferences) string {
			return "Only " + p.Price + " — link in bio"
		}},
	},
	ProblemSolution: {
		{"problem", 0, 3, "frustrated person, desaturated", func(_ *models.ProductData, prefs models.Preferences) string {
			return "Still dealing with " + strings.ToLower(orDefault(prefs.TargetAudience, "the old way")) + " problems?"
		}},
		{"agitate", 3, 5.5, "the problem up close", func(p *models.ProductData, prefs models.Preferences) string {
			return "There's a better way"
		}},
		{"solution", 5.5, 9, "product solving it", func(p *models.ProductData, prefs models.Preferences) string {
			return p.Title + ": " + benefit(p, prefs, 0)
		}},
		{"cta", 9, 12, "satisfied user", func(p *models.ProductData, _ models.Preferences) string {
			return "Get yours for " + p.Price
		}},
	},
	ThreeReasons: {
		{"hook", 0, 2, "countdown graphic", func(p *models.ProductData, _ models.Preferences) string {
			return "3 reasons you need " + p.Title
		}},
		{"reason1", 2, 5, "reason one visual", func(p *models.ProductData, prefs models.Preferences) string {
			return "1. " + benefit(p, prefs, 0)
		}},
		{"reason2", 5, 8, "reason two visual", func(p *models.ProductData, prefs models.Preferences) string {
			return "2. " + benefit(p, prefs, 1)
		}},
		{"reason3", 8, 11, "reason three visual", func(p *models.ProductData, prefs models.Preferences) string {
			return "3. " + benefit(p, prefs, 2)
		}},
		{"cta", 11, 13, "product hero shot", func(_ *models.ProductData, _ models.Preferences) string {
			return "Tap the link to get yours"
		}},
	},
	TestimonialMash: {
		{"hook", 0, 2.5, "star rating animation", func(p *models.ProductData, _ models.Preferences) string {
			return "Why everyone's talking about " + p.Title
		}},
		{"review1", 2.5, 5.5, "review card one", func(p *models.ProductData, _ models.Preferences) string {
			return review(p, 0)
		}},
		{"review2", 5.5, 8.5, "review card two", func(p *models.ProductData, _ models.Preferences) string {
			return review(p, 1)
		}},
		{"proof", 8.5, 11, "product in daily use", func(p *models.ProductData, prefs models.Preferences) string {
			return benefit(p, prefs, 0)
		}},
		{"cta", 11, 13, "product with price overlay", func(p *models.ProductData, _ models.Preferences) string {
			return "Join them — " + p.Price
		}},
	},
}

// Build assembles the Composition for one template. Captions derive 1:1
// from the shots' on-screen text, anchored at the bottom of the frame.
func Build(template string, p *models.ProductData, prefs models.Preferences, script, outputDir string) (*compose.Composition, error) {
	shots, ok := defs[template]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", template)
	}

	c := &compose.Composition{
		Template:  template,
		Script:    script,
		OutputDir: outputDir,
	}

	for _, d := range shots {
		text := d.text(p, prefs)
		c.Shots = append(c.Shots, compose.Shot{
			ID:        d.id,
			StartTime: d.start,
			EndTime:   d.end,
			Visual:    d.visual,
			Text:      text,
		})
		c.Captions = append(c.Captions, compose.Caption{
			StartTime: d.start,
			EndTime:   d.end,
			Text:      text,
			Position:  "bottom",
		})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// benefit prefers the customer's stated key benefits over scraped ones.
func benefit(p *models.ProductData, prefs models.Preferences, i int) string {
	if i < len(prefs.KeyBenefits) {
		return prefs.KeyBenefits[i]
	}
	if i < len(p.Benefits) {
		return p.Benefits[i]
	}
	return "Built to just work"
}

func review(p *models.ProductData, i int) string {
	if i < len(p.Reviews) {
		r := p.Reviews[i]
		return fmt.Sprintf("%s %q", strings.Repeat("★", r.Rating), r.Text)
	}
	return "★★★★★ \"Exactly as promised\""
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
