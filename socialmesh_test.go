package socialmesh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/engine"
	"github.com/hupe1980/socialmesh/internal/testutil"
)

func TestSocialMesh_FullCycle(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.AddResponse("Estimate how this", "40 50")
	eng.AddResponse("Adapt the following", "tweet-sized update")
	eng.AddResponse("Write a short social media post", "a fresh take on bitcoin")

	mesh := New(func(o *Options) {
		o.Engine = eng
		o.Interval = 10 * time.Millisecond
	})
	defer mesh.Stop()

	recorder := testutil.NewEventRecorder()
	recorder.SubscribeAll(mesh.Bus())

	adapter := testutil.NewScriptedAdapter(core.PlatformTwitter)
	mesh.RegisterPlatform(core.PlatformTwitter, adapter)

	agent, err := mesh.RegisterAgent(context.Background(), "crypto", []core.Platform{core.PlatformTwitter})
	require.NoError(t, err)
	require.Len(t, mesh.Agents(), 1)

	// Registration already announced the strategy; nothing fires until Start.
	require.Len(t, recorder.OfType(core.EventStrategyUpdated), 1)
	assert.Empty(t, recorder.OfType(core.EventContentCreated))

	mesh.Start()

	published := recorder.WaitFor(core.EventContentPublished, 1, 2*time.Second)
	require.NotEmpty(t, published)
	assert.Equal(t, agent.ID, published[0].AgentID)
	assert.GreaterOrEqual(t, adapter.PostCount(), 1)

	require.NoError(t, mesh.Stop())
	require.NoError(t, mesh.UnregisterAgent(context.Background(), agent.ID))
	assert.Empty(t, mesh.Agents())
}

func TestSocialMesh_AdHocGeneration(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.AddResponse("Estimate how this", "10 20")
	eng.AddResponse("Write a short social media post", "hello world")

	mesh := New(func(o *Options) { o.Engine = eng })
	defer mesh.Stop()

	content, err := mesh.Generator().Generate(context.Background(), core.GenerationRequest{
		Domain:     "crypto",
		TemplateID: "social-post",
		Variables:  map[string]string{"topic": "bitcoin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", content.Text)
	assert.Equal(t, core.Performance{ExpectedEngagement: 10, ConfidenceScore: 20}, content.Performance)
}
