package core

import "time"

// ContentFormat constrains the shape of generated content for a template.
type ContentFormat struct {
	// MaxLength is the hard upper bound on generated text length. Content
	// exceeding it fails validation; it is never silently truncated.
	MaxLength     int    `json:"max_length"`
	RequiresMedia bool   `json:"requires_media,omitempty"`
	Style         string `json:"style,omitempty"`
}

// ContentTemplate is a reusable prompt skeleton plus format constraints.
// Templates are registered at generator construction time and treated as
// immutable afterwards.
type ContentTemplate struct {
	ID string `json:"id"`
	// Prompt may contain {variable} placeholders substituted at generation
	// time. Placeholders without a matching request variable are left
	// verbatim.
	Prompt    string        `json:"prompt"`
	Variables []string      `json:"variables,omitempty"`
	Platforms []Platform    `json:"platforms,omitempty"`
	Format    ContentFormat `json:"format"`
}

// GenerationContext carries optional situational hints appended to the
// generation prompt. Every field is emitted only when present.
type GenerationContext struct {
	RecentPosts       []string `json:"recent_posts,omitempty"`
	TrendingTopics    []string `json:"trending_topics,omitempty"`
	TimeOfDay         string   `json:"time_of_day,omitempty"`
	AudienceSegments  []string `json:"audience_segments,omitempty"`
	AudienceInterests []string `json:"audience_interests,omitempty"`
}

// AffiliatePromotion directs the generator to weave a promotion into the
// content.
type AffiliatePromotion struct {
	Product string `json:"product"`
	URL     string `json:"url,omitempty"`
}

// GenerationRequest is the input to one generation cycle.
type GenerationRequest struct {
	Domain     string              `json:"domain"`
	TemplateID string              `json:"template_id"`
	Variables  map[string]string   `json:"variables,omitempty"`
	Platforms  []Platform          `json:"platforms,omitempty"`
	Tone       string              `json:"tone,omitempty"`
	Context    *GenerationContext  `json:"context,omitempty"`
	Affiliate  *AffiliatePromotion `json:"affiliate,omitempty"`
}

// Variation is a platform-adapted rendering of the same base content.
type Variation struct {
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
}

// Performance is the predicted reception of a piece of content. Both scores
// live in [0,100] and originate from a best-effort parse of unstructured
// engine output, so 0/0 means "no estimate" rather than "guaranteed flop".
type Performance struct {
	ExpectedEngagement int `json:"expected_engagement"`
	ConfidenceScore    int `json:"confidence_score"`
}

// GeneratedContent is the validated output of the generator: base text plus
// one independently generated variation per requested platform.
type GeneratedContent struct {
	ID          string            `json:"id"`
	TemplateID  string            `json:"template_id"`
	Text        string            `json:"text"`
	Variables   map[string]string `json:"variables,omitempty"`
	Variations  []Variation       `json:"variations,omitempty"`
	Performance Performance       `json:"performance"`
	CreatedAt   time.Time         `json:"created_at"`
}

// VariationFor returns the variation text for a platform, falling back to
// the base text when no variation was generated for it.
func (c *GeneratedContent) VariationFor(p Platform) string {
	for _, v := range c.Variations {
		if v.Platform == p {
			return v.Text
		}
	}
	return c.Text
}

// PostResult is what a platform adapter reports after a successful publish.
type PostResult struct {
	ID        string    `json:"id"`
	Platform  Platform  `json:"platform"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url,omitempty"`
}
