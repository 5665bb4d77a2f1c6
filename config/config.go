// Package config loads agentsim's settings from a config file,
// environment variables, and flags, in that increasing order of
// precedence, via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Agent is one fleet member's static configuration.
type Agent struct {
	ID      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Role    string `mapstructure:"role"`
	Goal    string `mapstructure:"goal"`
	Persona string `mapstructure:"persona"`
}

// Config is agentsim's full resolved configuration.
type Config struct {
	MinDelay                time.Duration `mapstructure:"min_delay"`
	MaxDelay                time.Duration `mapstructure:"max_delay"`
	MockQuestionProbability float64       `mapstructure:"mock_question_probability"`
	WorkerPoolSize          int           `mapstructure:"worker_pool_size"`

	DebugServerAddr string `mapstructure:"debug_server_addr"`
	LogLevel        string `mapstructure:"log_level"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`

	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPProtocol string `mapstructure:"otlp_protocol"`

	Agents []Agent `mapstructure:"agents"`
}

// Manager owns a viper instance and the Config decoded from it.
type Manager struct {
	v   *viper.Viper
	cfg Config
}

func defaults(v *viper.Viper) {
	v.SetDefault("min_delay", 2*time.Second)
	v.SetDefault("max_delay", 6*time.Second)
	v.SetDefault("mock_question_probability", 0.3)
	v.SetDefault("worker_pool_size", 64)
	v.SetDefault("debug_server_addr", ":8090")
	v.SetDefault("log_level", "info")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("otlp_protocol", "grpc")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("otlp_endpoint", "")
}

// NewManager builds a Manager, searching for an "agentsim" config file
// (any format viper supports: yaml, json, toml, ...) in the current
// directory and the user's home directory, and binding environment
// variables under the AGENTSIM_ prefix. A missing config file is not
// an error — agentsim runs on defaults plus environment/flags alone.
func NewManager(flags *pflag.FlagSet) (*Manager, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigName("agentsim")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("AGENTSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openai_api_key", "AGENTSIM_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &Manager{v: v, cfg: cfg}, nil
}

// Get returns the resolved configuration.
func (m *Manager) Get() Config { return m.cfg }

// ConfigFileUsed reports the path of the config file actually loaded,
// or "" if none was found.
func (m *Manager) ConfigFileUsed() string { return m.v.ConfigFileUsed() }
