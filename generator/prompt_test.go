package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/socialmesh/core"
)

func TestSubstituteVariables(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		vars   map[string]string
		want   string
	}{
		{
			name:   "all placeholders matched",
			prompt: "Write about {topic} for {domain}",
			vars:   map[string]string{"topic": "bitcoin", "domain": "crypto"},
			want:   "Write about bitcoin for crypto",
		},
		{
			name:   "unmatched placeholder left verbatim",
			prompt: "Write about {topic} at {time}",
			vars:   map[string]string{"topic": "bitcoin"},
			want:   "Write about bitcoin at {time}",
		},
		{
			name:   "no variables",
			prompt: "Write about {topic}",
			vars:   nil,
			want:   "Write about {topic}",
		},
		{
			name:   "repeated placeholder",
			prompt: "{x} and {x}",
			vars:   map[string]string{"x": "y"},
			want:   "y and y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, substituteVariables(tt.prompt, tt.vars))
		})
	}
}

func TestBuildPrompt_OptionalSections(t *testing.T) {
	tpl := core.ContentTemplate{ID: "t", Prompt: "Write about {topic}."}

	t.Run("bare prompt without optional sections", func(t *testing.T) {
		got := buildPrompt(tpl, core.GenerationRequest{Variables: map[string]string{"topic": "defi"}})
		assert.Equal(t, "Write about defi.", got)
	})

	t.Run("affiliate section appended", func(t *testing.T) {
		got := buildPrompt(tpl, core.GenerationRequest{
			Variables: map[string]string{"topic": "defi"},
			Affiliate: &core.AffiliatePromotion{Product: "HW Wallet", URL: "https://example.com"},
		})
		assert.Contains(t, got, "HW Wallet")
		assert.Contains(t, got, "https://example.com")
	})

	t.Run("context sections appended only when present", func(t *testing.T) {
		got := buildPrompt(tpl, core.GenerationRequest{
			Variables: map[string]string{"topic": "defi"},
			Context: &core.GenerationContext{
				TrendingTopics: []string{"ETF", "halving"},
				TimeOfDay:      "morning",
			},
		})
		assert.Contains(t, got, "ETF, halving")
		assert.Contains(t, got, "morning")
		assert.NotContains(t, got, "Recent posts")
		assert.NotContains(t, got, "Audience")
	})
}

func TestSystemContext(t *testing.T) {
	got := systemContext(core.GenerationRequest{Domain: "crypto", Tone: "witty"})
	assert.Contains(t, got, "crypto")
	assert.Contains(t, got, "witty")

	bare := systemContext(core.GenerationRequest{})
	assert.Equal(t, "You are a social media content creator.", bare)
}

func TestVariationPrompt_CarriesConstraint(t *testing.T) {
	got := variationPrompt("hello", core.PlatformTwitter, core.ContentFormat{MaxLength: 280, Style: "casual"})
	assert.Contains(t, got, "twitter")
	assert.Contains(t, got, "280")
	assert.Contains(t, got, "casual")
	assert.Contains(t, got, "hello")
}
