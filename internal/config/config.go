package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Store   StoreConfig   `mapstructure:"store"   validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	SRS     SRSConfig     `mapstructure:"srs"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Persist PersistConfig `mapstructure:"persist" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int     `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string  `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string  `mapstructure:"log_format" validate:"required,oneof=json text"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres"`
	URL    string `mapstructure:"url"    validate:"required_unless=Driver memory"`
}

// LLMConfig contains all word-generation related settings. An empty API key
// is valid: learners then have to supply their own key.
type LLMConfig struct {
	Provider           string        `mapstructure:"provider"             validate:"required,oneof=gemini openai"`
	GeminiAPIKey       string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey       string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL      string        `mapstructure:"openai_base_url"      validate:"omitempty,url"`
	ModelName          string        `mapstructure:"model_name"           validate:"required"`
	Temperature        float32       `mapstructure:"temperature"          validate:"gte=0,lte=2"`
	PromptTemplatePath string        `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	Timeout            time.Duration `mapstructure:"timeout"              validate:"gt=0"`
}

// APIKey returns the configured key for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// SessionConfig contains practice-session thresholds.
type SessionConfig struct {
	NewWordsPerSession int `mapstructure:"new_words_per_session" validate:"required,gt=0"`
	NewStreakLimit     int `mapstructure:"new_streak_limit"      validate:"required,gt=0"`
}

// SRSConfig overrides the review interval table, in hours per level.
type SRSConfig struct {
	IntervalHours []int `mapstructure:"interval_hours" validate:"max=8,dive,gte=0"`
}

// SpeechConfig configures the pronunciation service.
type SpeechConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	AudioDir string        `mapstructure:"audio_dir" validate:"required_if=Enabled true"`
	BaseURL  string        `mapstructure:"base_url"  validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout"   validate:"gte=0"`
}

// PersistConfig configures the background persistence writer.
type PersistConfig struct {
	Workers int `mapstructure:"workers" validate:"required,gt=0,lte=16"`
}
