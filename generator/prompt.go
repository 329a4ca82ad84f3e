package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/socialmesh/core"
)

// placeholderPattern matches {variable} style template placeholders.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// substituteVariables replaces each {key} placeholder with the matching
// request variable. Placeholders without a matching variable are left
// verbatim; there is no error path.
func substituteVariables(prompt string, vars map[string]string) string {
	if len(vars) == 0 {
		return prompt
	}
	return placeholderPattern.ReplaceAllStringFunc(prompt, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := vars[key]; ok {
			return v
		}
		return m
	})
}

// buildPrompt renders the full generation prompt: the substituted template
// prompt followed by optional affiliate guidance and situational context
// sections, each emitted only when present.
func buildPrompt(tpl core.ContentTemplate, req core.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(substituteVariables(tpl.Prompt, req.Variables))

	if a := req.Affiliate; a != nil {
		sb.WriteString("\n\nNaturally include a promotion for ")
		sb.WriteString(a.Product)
		if a.URL != "" {
			sb.WriteString(" (")
			sb.WriteString(a.URL)
			sb.WriteString(")")
		}
		sb.WriteString(". Keep it subtle and on-topic.")
	}

	if c := req.Context; c != nil {
		if len(c.RecentPosts) > 0 {
			sb.WriteString("\n\nRecent posts, avoid repeating them:")
			for _, p := range c.RecentPosts {
				sb.WriteString("\n- ")
				sb.WriteString(p)
			}
		}
		if len(c.TrendingTopics) > 0 {
			sb.WriteString("\n\nTrending topics to consider: ")
			sb.WriteString(strings.Join(c.TrendingTopics, ", "))
		}
		if c.TimeOfDay != "" {
			sb.WriteString("\n\nTime of day: ")
			sb.WriteString(c.TimeOfDay)
		}
		if len(c.AudienceSegments) > 0 {
			sb.WriteString("\n\nAudience: ")
			sb.WriteString(strings.Join(c.AudienceSegments, ", "))
		}
		if len(c.AudienceInterests) > 0 {
			sb.WriteString("\n\nAudience interests: ")
			sb.WriteString(strings.Join(c.AudienceInterests, ", "))
		}
	}

	return sb.String()
}

// systemContext builds the system prompt framing every engine call for a
// request.
func systemContext(req core.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a social media content creator")
	if req.Domain != "" {
		sb.WriteString(" specializing in ")
		sb.WriteString(req.Domain)
	}
	sb.WriteString(".")
	if req.Tone != "" {
		sb.WriteString(" Write in a ")
		sb.WriteString(req.Tone)
		sb.WriteString(" tone.")
	}
	return sb.String()
}

// variationPrompt asks the engine to adapt base content for one platform
// within the template's length constraint.
func variationPrompt(base string, p core.Platform, format core.ContentFormat) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Adapt the following content for %s, matching the platform's conventions.", p)
	if format.MaxLength > 0 {
		fmt.Fprintf(&sb, " Stay under %d characters.", format.MaxLength)
	}
	if format.Style != "" {
		fmt.Fprintf(&sb, " Style: %s.", format.Style)
	}
	sb.WriteString("\n\n")
	sb.WriteString(base)
	return sb.String()
}

// performancePrompt asks the engine for a rough engagement prediction. The
// answer is free text; see ParsePerformance for the extraction contract.
func performancePrompt(base string, req core.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("Estimate how this ")
	if req.Domain != "" {
		sb.WriteString(req.Domain)
		sb.WriteString(" ")
	}
	sb.WriteString("post will perform. Answer with two numbers between 0 and 100: expected engagement, then confidence.\n\n")
	sb.WriteString(base)
	return sb.String()
}
