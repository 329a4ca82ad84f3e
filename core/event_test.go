package core

import "testing"

func TestNewEventDerivesTypeFromPayload(t *testing.T) {
	tests := []struct {
		payload Payload
		want    EventType
	}{
		{payload: ContentCreatedPayload{Text: "hi"}, want: EventContentCreated},
		{payload: ContentScheduledPayload{}, want: EventContentScheduled},
		{payload: ContentPublishedPayload{}, want: EventContentPublished},
		{payload: EngagementReceivedPayload{}, want: EventEngagementReceived},
		{payload: TrendDetectedPayload{}, want: EventTrendDetected},
		{payload: StrategyUpdatedPayload{}, want: EventStrategyUpdated},
		{payload: AnalyticsUpdatedPayload{}, want: EventAnalyticsUpdated},
	}

	for _, tt := range tests {
		evt := NewEvent("agent-1", tt.payload, Metadata{Domain: "crypto"})
		if evt.Type != tt.want {
			t.Errorf("NewEvent(%T).Type = %q, want %q", tt.payload, evt.Type, tt.want)
		}
		if evt.ID == "" {
			t.Error("expected a generated event id")
		}
		if evt.AgentID != "agent-1" {
			t.Errorf("agent id = %q", evt.AgentID)
		}
		if evt.Timestamp.IsZero() {
			t.Error("expected a timestamp")
		}
	}
}

func TestVariationFor(t *testing.T) {
	content := GeneratedContent{
		Text: "base",
		Variations: []Variation{
			{Platform: PlatformTwitter, Text: "tweet"},
			{Platform: PlatformDiscord, Text: "discord post"},
		},
	}

	if got := content.VariationFor(PlatformTwitter); got != "tweet" {
		t.Errorf("VariationFor(twitter) = %q", got)
	}
	if got := content.VariationFor(PlatformTelegram); got != "base" {
		t.Errorf("VariationFor(telegram) = %q, want base text fallback", got)
	}
}
