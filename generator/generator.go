package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/engine"
	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/metrics"
)

// Options configures a Generator.
type Options struct {
	// Logger receives per-call diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Generator converts a GenerationRequest into validated GeneratedContent.
//
// The template registry is fixed at construction and the generator holds no
// other mutable state, so a single instance is safe for concurrent use. Any
// engine failure propagates unchanged to the caller; retries belong to the
// scheduling layer.
type Generator struct {
	engine    engine.Engine
	templates map[string]core.ContentTemplate
	logger    logging.Logger
}

// New creates a Generator over an engine and a set of templates. Later
// templates with a duplicate id replace earlier ones.
func New(eng engine.Engine, templates []core.ContentTemplate, optFns ...func(o *Options)) *Generator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	reg := make(map[string]core.ContentTemplate, len(templates))
	for _, t := range templates {
		reg[t.ID] = t
	}
	return &Generator{engine: eng, templates: reg, logger: opts.Logger}
}

// Template returns a registered template by id.
func (g *Generator) Template(id string) (core.ContentTemplate, error) {
	t, ok := g.templates[id]
	if !ok {
		return core.ContentTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, nil
}

// Generate runs one generation cycle:
//
//  1. resolve the template
//  2. build the prompt (variable substitution + optional sections)
//  3. call the engine for the base content, once per platform for a
//     variation (concurrently), and once for a performance estimate
//  4. validate lengths against the template format
//
// The returned content carries the template id, the substituted variables
// and the parsed performance estimate.
func (g *Generator) Generate(ctx context.Context, req core.GenerationRequest) (*core.GeneratedContent, error) {
	tpl, err := g.Template(req.TemplateID)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(tpl, req)
	system := systemContext(req)

	base, err := g.callEngine(ctx, prompt, system)
	if err != nil {
		return nil, err
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, fmt.Errorf("%w: empty base content", ErrInvalidResponseFormat)
	}
	if err := validateLength(base, tpl.Format); err != nil {
		return nil, err
	}

	variations, err := g.generateVariations(ctx, base, tpl, req)
	if err != nil {
		return nil, err
	}

	perfResp, err := g.callEngine(ctx, performancePrompt(base, req), system)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(perfResp) == "" {
		return nil, fmt.Errorf("%w: empty performance estimate", ErrMissingMetadata)
	}

	return &core.GeneratedContent{
		ID:          core.NewID(),
		TemplateID:  tpl.ID,
		Text:        base,
		Variables:   req.Variables,
		Variations:  variations,
		Performance: ParsePerformance(perfResp),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// generateVariations produces one platform-adapted variation per requested
// platform. Calls run concurrently with no ordering guarantee among them;
// results keep the request's platform order.
func (g *Generator) generateVariations(ctx context.Context, base string, tpl core.ContentTemplate, req core.GenerationRequest) ([]core.Variation, error) {
	if len(req.Platforms) == 0 {
		return nil, nil
	}

	variations := make([]core.Variation, len(req.Platforms))
	eg, vctx := errgroup.WithContext(ctx)
	for i, p := range req.Platforms {
		eg.Go(func() error {
			text, err := g.callEngine(vctx, variationPrompt(base, p, tpl.Format), systemContext(req))
			if err != nil {
				return err
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return fmt.Errorf("%w: empty variation for %s", ErrInvalidResponseFormat, p)
			}
			if err := validateLength(text, tpl.Format); err != nil {
				return fmt.Errorf("%s variation: %w", p, err)
			}
			variations[i] = core.Variation{Platform: p, Text: text}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return variations, nil
}

func (g *Generator) callEngine(ctx context.Context, prompt, system string) (string, error) {
	start := time.Now()
	text, err := g.engine.Generate(ctx, prompt, system)
	provider := g.engine.Info().Provider
	if err != nil {
		metrics.EngineCalls.WithLabelValues(provider, metrics.StatusFailed).Inc()
		g.logger.Error("engine call failed", "provider", provider, "duration", time.Since(start).String(), "error", err.Error())
		return "", err
	}
	metrics.EngineCalls.WithLabelValues(provider, metrics.StatusOK).Inc()
	g.logger.Debug("engine call completed", "provider", provider, "duration", time.Since(start).String())
	return text, nil
}

// validateLength enforces the template's hard length bound. Lengths are
// counted in runes, matching how platforms count characters.
func validateLength(text string, format core.ContentFormat) error {
	if format.MaxLength <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > format.MaxLength {
		return fmt.Errorf("%w: %d > %d", ErrContentTooLong, n, format.MaxLength)
	}
	return nil
}
