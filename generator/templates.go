package generator

import "github.com/hupe1980/socialmesh/core"

// DefaultTemplateID is the template the runtime uses for recurring
// generation jobs unless configured otherwise.
const DefaultTemplateID = "social-post"

// DefaultTemplates returns the built-in template set. Callers may extend or
// replace it when constructing a Generator.
func DefaultTemplates() []core.ContentTemplate {
	return []core.ContentTemplate{
		{
			ID:        DefaultTemplateID,
			Prompt:    "Write a short social media post about {topic} for the {domain} community. Target platform: {platform}.",
			Variables: []string{"topic", "domain", "platform"},
			Platforms: core.AllPlatforms(),
			Format:    core.ContentFormat{MaxLength: 280, Style: "casual"},
		},
		{
			ID:        "market-update",
			Prompt:    "Summarize today's {domain} market movement around {topic}. Lead with the single most notable number.",
			Variables: []string{"domain", "topic"},
			Platforms: core.AllPlatforms(),
			Format:    core.ContentFormat{MaxLength: 500, Style: "analytical"},
		},
		{
			ID:        "announcement",
			Prompt:    "Announce {subject} to the {domain} audience. Be direct and include a call to action.",
			Variables: []string{"subject", "domain"},
			Platforms: core.AllPlatforms(),
			Format:    core.ContentFormat{MaxLength: 400, Style: "direct"},
		},
	}
}
