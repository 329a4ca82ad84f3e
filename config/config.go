// Package config loads socialmesh configuration via viper: defaults, an
// optional YAML file and SOCIALMESH_* environment variables, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EngineConfig selects and tunes the generation engine.
type EngineConfig struct {
	// Provider is one of "openai", "anthropic" or "mock".
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int64   `mapstructure:"max_tokens"`
}

// RedisConfig configures the optional Redis-backed queue. An empty Addr
// selects the in-memory queue.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Stream   string `mapstructure:"stream"`
}

// SchedulerConfig tunes the runtime's recurring jobs.
type SchedulerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	TemplateID  string        `mapstructure:"template_id"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AgentConfig declares an agent to register at startup.
type AgentConfig struct {
	Domain    string   `mapstructure:"domain"`
	Platforms []string `mapstructure:"platforms"`
}

// Config is the full application configuration.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
	Agents    []AgentConfig   `mapstructure:"agents"`
}

// Load reads configuration. When path is empty, a socialmesh.yaml in the
// working directory or $HOME/.socialmesh is used if present; a missing file
// is not an error. An explicit path that cannot be read is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SOCIALMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("socialmesh")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.socialmesh")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.provider", "mock")
	v.SetDefault("engine.temperature", 0.7)
	v.SetDefault("engine.max_tokens", 2048)
	v.SetDefault("redis.stream", "socialmesh:jobs")
	v.SetDefault("scheduler.interval", time.Hour)
	v.SetDefault("scheduler.call_timeout", 2*time.Minute)
	v.SetDefault("scheduler.template_id", "social-post")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
