// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Port        string   `mapstructure:"port"`
	FrontendURL string   `mapstructure:"frontend_url"`
	DBPath      string   `mapstructure:"db_path"`
	Origins     []string `mapstructure:"allowed_origins"`

	StartingCoins  int           `mapstructure:"starting_coins"`
	CorrectDelay   time.Duration `mapstructure:"correct_settle_delay"`
	IncorrectDelay time.Duration `mapstructure:"incorrect_reset_delay"`
	GateDelay      time.Duration `mapstructure:"gate_settle_delay"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	GateRequired   bool          `mapstructure:"gate_required"`

	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`

	ActivityQueueSize    int           `mapstructure:"activity_queue_size"`
	AssistantTypingDelay time.Duration `mapstructure:"assistant_typing_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("frontend_url", "")
	v.SetDefault("db_path", "./data/arctic.db")
	v.SetDefault("allowed_origins", []string{})

	v.SetDefault("starting_coins", 100)
	v.SetDefault("correct_settle_delay", 2500*time.Millisecond)
	v.SetDefault("incorrect_reset_delay", 3*time.Second)
	v.SetDefault("gate_settle_delay", 2*time.Second)
	v.SetDefault("tick_interval", time.Second)
	v.SetDefault("gate_required", true)

	v.SetDefault("session_idle_ttl", 30*time.Minute)
	v.SetDefault("sweep_interval", 5*time.Minute)

	v.SetDefault("activity_queue_size", 256)
	v.SetDefault("assistant_typing_delay", 1500*time.Millisecond)
}

// Load reads configuration from defaults, an optional config.yaml and
// environment variables, in increasing priority.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Origins = cleanOrigins(cfg.Origins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func cleanOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.StartingCoins < 0 {
		return fmt.Errorf("STARTING_COINS must be >= 0")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be > 0")
	}
	if c.CorrectDelay < 0 || c.IncorrectDelay < 0 || c.GateDelay < 0 {
		return fmt.Errorf("settle delays must be >= 0")
	}
	if c.ActivityQueueSize <= 0 {
		return fmt.Errorf("ACTIVITY_QUEUE_SIZE must be > 0")
	}
	if c.SessionIdleTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL and SWEEP_INTERVAL must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

// AllowedOrigins returns the CORS origins: the explicit list if set,
// otherwise the frontend URL, otherwise the local dev servers.
func (c *Config) AllowedOrigins() []string {
	if len(c.Origins) > 0 {
		return c.Origins
	}
	if c.FrontendURL != "" {
		return []string{c.FrontendURL}
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}
