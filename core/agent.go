package core

import (
	"fmt"
	"time"
)

// Personality describes an agent's voice. The fields are descriptive only:
// they flavor generated prompts but never drive control flow.
type Personality struct {
	Name   string   `json:"name"`
	Tone   string   `json:"tone"`
	Traits []string `json:"traits,omitempty"`
}

// ContentStrategy captures how often and about what an agent posts.
type ContentStrategy struct {
	// PostingInterval is the cadence between recurring generation cycles.
	PostingInterval time.Duration `json:"posting_interval"`
	// TopicWeights biases topic selection inside the agent's domain.
	TopicWeights map[string]float64 `json:"topic_weights,omitempty"`
	// ContentMix distributes output across content kinds (post, thread, reply).
	ContentMix map[string]float64 `json:"content_mix,omitempty"`
	// EngagementPolicy names how replies/mentions are handled.
	EngagementPolicy string `json:"engagement_policy"`
}

// Analytics aggregates per-agent counters. Values are maintained by the
// runtime and external collaborators; the struct itself carries no locking —
// the owner serializes access.
type Analytics struct {
	PostsCreated    int       `json:"posts_created"`
	PostsPublished  int       `json:"posts_published"`
	EngagementTotal int       `json:"engagement_total"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Agent is a configured persona bound to a domain and a set of platforms.
// Agents are created through NewAgent and owned exclusively by the runtime's
// agent table; they are removed only by explicit unregistration.
type Agent struct {
	ID          string          `json:"id"`
	Domain      string          `json:"domain"`
	Personality Personality     `json:"personality"`
	Platforms   []Platform      `json:"platforms"`
	Strategy    ContentStrategy `json:"strategy"`
	Analytics   Analytics       `json:"analytics"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewAgent is the agent factory: it constructs an agent record for a domain
// with default personality and strategy. The platform slice is copied so the
// caller cannot mutate the agent's bindings afterwards.
func NewAgent(domain string, platforms []Platform) *Agent {
	ps := make([]Platform, len(platforms))
	copy(ps, platforms)
	return &Agent{
		ID:          NewID(),
		Domain:      domain,
		Personality: defaultPersonality(domain),
		Platforms:   ps,
		Strategy:    defaultStrategy(),
		CreatedAt:   time.Now().UTC(),
	}
}

func defaultPersonality(domain string) Personality {
	return Personality{
		Name:   fmt.Sprintf("%s-agent", domain),
		Tone:   "informative",
		Traits: []string{"curious", "concise", "engaging"},
	}
}

func defaultStrategy() ContentStrategy {
	return ContentStrategy{
		PostingInterval:  time.Hour,
		TopicWeights:     map[string]float64{"news": 0.5, "analysis": 0.3, "community": 0.2},
		ContentMix:       map[string]float64{"post": 0.8, "thread": 0.2},
		EngagementPolicy: "reply-selectively",
	}
}
