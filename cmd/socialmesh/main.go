// Command socialmesh runs the content-agent orchestrator: it loads
// configuration, wires the generation engine, queue and runtime, registers
// the configured agents and serves until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"
	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"

	"github.com/hupe1980/socialmesh"
	"github.com/hupe1980/socialmesh/config"
	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/engine"
	anthropicengine "github.com/hupe1980/socialmesh/engine/anthropic"
	openaiengine "github.com/hupe1980/socialmesh/engine/openai"
	"github.com/hupe1980/socialmesh/logging"
	"github.com/hupe1980/socialmesh/platform"
	"github.com/hupe1980/socialmesh/queue"
	redisqueue "github.com/hupe1980/socialmesh/queue/redis"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "socialmesh",
		Short:        "Autonomous social content agent orchestrator",
		Version:      version,
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the orchestrator until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local development; absence is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, false)

	eng, err := buildEngine(cfg.Engine)
	if err != nil {
		return err
	}

	q, err := buildQueue(cfg.Redis, logger)
	if err != nil {
		return err
	}

	mesh := socialmesh.New(func(o *socialmesh.Options) {
		o.Engine = eng
		o.Queue = q
		o.Logger = logger
		o.Interval = cfg.Scheduler.Interval
		o.CallTimeout = cfg.Scheduler.CallTimeout
		o.TemplateID = cfg.Scheduler.TemplateID
	})

	// Dry-run adapters keep the orchestrator runnable without vendor
	// credentials; real deployments register their own adapters instead.
	for _, p := range core.AllPlatforms() {
		mesh.RegisterPlatform(p, platform.NewDryRunAdapter(p, logger))
	}

	for _, a := range cfg.Agents {
		platforms := make([]core.Platform, 0, len(a.Platforms))
		for _, name := range a.Platforms {
			p, err := core.ParsePlatform(name)
			if err != nil {
				return fmt.Errorf("agent %q: %w", a.Domain, err)
			}
			platforms = append(platforms, p)
		}
		if _, err := mesh.RegisterAgent(ctx, a.Domain, platforms); err != nil {
			return fmt.Errorf("failed to register agent %q: %w", a.Domain, err)
		}
	}

	mesh.Start()
	logger.Info("socialmesh serving", "version", version, "engine", eng.Info().Provider, "agents", len(cfg.Agents))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case <-sigCh:
	}

	logger.Info("shutting down")
	return mesh.Stop()
}

func buildEngine(cfg config.EngineConfig) (engine.Engine, error) {
	switch cfg.Provider {
	case "openai":
		var clientOpts []option.RequestOption
		if cfg.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
		}
		client := oai.NewClient(clientOpts...)
		return openaiengine.NewFromClient(&client, func(o *openaiengine.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
			if cfg.MaxTokens > 0 {
				o.MaxCompletionTokens = cfg.MaxTokens
			}
		}), nil
	case "anthropic":
		return anthropicengine.New(func(o *anthropicengine.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
			if cfg.MaxTokens > 0 {
				o.MaxTokens = cfg.MaxTokens
			}
			o.APIKey = cfg.APIKey
		}), nil
	case "mock", "":
		return engine.NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine provider %q", cfg.Provider)
	}
}

func buildQueue(cfg config.RedisConfig, logger logging.Logger) (queue.Queue, error) {
	if cfg.Addr == "" {
		return queue.NewInMemory(func(o *queue.InMemoryOptions) { o.Logger = logger }), nil
	}
	return redisqueue.New(func(o *redisqueue.Options) {
		o.Addr = cfg.Addr
		o.Password = cfg.Password
		o.DB = cfg.DB
		if cfg.Stream != "" {
			o.Stream = cfg.Stream
		}
		o.Logger = logger
	})
}
