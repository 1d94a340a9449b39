// Package config provides configuration loading, validation, and defaults
// for the bot. Values come from defaults, an optional config.yaml, and
// BOT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Transport host modes.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`

	// DashboardURL is the externally hosted calorie dashboard opened from
	// the /start inline button.
	DashboardURL string `mapstructure:"dashboard_url" validate:"required,url"`
}

// TelegramConfig holds transport settings and all user-facing messages.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// Mode selects the transport host: polling or webhook.
	Mode string `mapstructure:"mode" validate:"oneof=polling webhook"`

	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Messages MessagesConfig `mapstructure:"messages"`
}

// WebhookConfig configures the webhook transport host. PublicURL is the
// externally reachable endpoint registered with Telegram; registration is
// retried with a fixed delay to tolerate slow DNS on container platforms.
type WebhookConfig struct {
	PublicURL            string        `mapstructure:"public_url" validate:"omitempty,url"`
	ListenAddr           string        `mapstructure:"listen_addr" validate:"required"`
	RegisterMaxAttempts  int           `mapstructure:"register_max_attempts" validate:"min=1,max=20"`
	RegisterRetryDelay   time.Duration `mapstructure:"register_retry_delay" validate:"min=1s,max=5m"`
	DropPendingOnStartup bool          `mapstructure:"drop_pending_on_startup"`
}

// MessagesConfig holds every user-facing reply string.
type MessagesConfig struct {
	Welcome        string `mapstructure:"welcome" validate:"required"`
	DashboardLabel string `mapstructure:"dashboard_label" validate:"required"`
	Analyzing      string `mapstructure:"analyzing" validate:"required"`
	AnalysisFailed string `mapstructure:"analysis_failed" validate:"required"`
	// NutritionSummary is a format string taking food name, calories,
	// protein, carbs and fat, in that order.
	NutritionSummary string `mapstructure:"nutrition_summary" validate:"required"`
	BMIUsage         string `mapstructure:"bmi_usage" validate:"required"`
	// BMIResult is a format string taking the rounded BMI value and category.
	BMIResult    string `mapstructure:"bmi_result" validate:"required"`
	NoLogs       string `mapstructure:"no_logs" validate:"required"`
	DailyTotal   string `mapstructure:"daily_total" validate:"required"`
	GeneralError string `mapstructure:"general_error" validate:"required"`
}

// GeminiConfig configures the vision model client.
type GeminiConfig struct {
	Token   string        `mapstructure:"token" validate:"required"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=10m"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"min=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"min=1"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// Load reads configuration from the given YAML file (a missing file is not
// an error), overlays BOT_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only affects keys viper already knows about; the secrets
	// have no defaults, so bind them explicitly.
	for _, key := range []string{
		"telegram.token",
		"telegram.webhook.public_url",
		"gemini.token",
		"database.url",
		"dashboard_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %q: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.Telegram.Mode == ModeWebhook && cfg.Telegram.Webhook.PublicURL == "" {
		return nil, errors.New("telegram.webhook.public_url is required in webhook mode")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.mode", ModePolling)
	v.SetDefault("telegram.webhook.listen_addr", ":8080")
	v.SetDefault("telegram.webhook.register_max_attempts", 5)
	v.SetDefault("telegram.webhook.register_retry_delay", 5*time.Second)
	v.SetDefault("telegram.webhook.drop_pending_on_startup", false)

	v.SetDefault("telegram.messages.welcome",
		"Hi! I'm your AI calorie assistant. Send me a photo of your food and I'll estimate its nutrition.\n\nUse /bmi <weight_kg> <height_cm> to update your profile.")
	v.SetDefault("telegram.messages.dashboard_label", "\U0001F4CA Open Dashboard")
	v.SetDefault("telegram.messages.analyzing", "Analyzing your food... ⏳")
	v.SetDefault("telegram.messages.analysis_failed", "Couldn't analyze that photo. Please make sure the food is clearly visible and try again.")
	v.SetDefault("telegram.messages.nutrition_summary", "✅ %s\n\U0001F525 %d kcal\nP: %.1fg | C: %.1fg | F: %.1fg")
	v.SetDefault("telegram.messages.bmi_usage", "Usage: /bmi <weight_kg> <height_cm>, e.g. /bmi 70 170")
	v.SetDefault("telegram.messages.bmi_result", "Your BMI: %.1f (%s) ✅")
	v.SetDefault("telegram.messages.no_logs", "No meals logged today yet. Send me a food photo to get started!")
	v.SetDefault("telegram.messages.daily_total", "Today so far:\n\U0001F525 %d kcal\nP: %.1fg | C: %.1fg | F: %.1fg\n(%d meals)")
	v.SetDefault("telegram.messages.general_error", "Something went wrong. Please try again later.")

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", 2*time.Minute)

	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)
}
