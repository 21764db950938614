// Package config loads server settings from the environment.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. an optional config file named by CONFIG_FILE (any format viper reads)
//  3. a .env file in the working directory (loaded into the process env)
//  4. real environment variables
//
// godotenv never overrides variables that are already set, so a real
// environment variable always beats the .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sakif/applyhelp/internal/i18n"
	"github.com/sakif/applyhelp/internal/logging"
)

// MinSecretLength is the shortest JWT secret the server accepts.
const MinSecretLength = 16

type Config struct {
	Port          int
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	CookieSecure  bool
	GitHub        GitHubConfig
	Log           logging.Options
	RedisURL      string
	AuthRateLimit int // requests per minute per client on login/register
	// StrictTransitions enables the strict tracker status table.
	StrictTransitions bool
	DefaultLocale     i18n.Locale
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Enabled reports whether GitHub login can be offered.
func (g GitHubConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Load reads configuration. envFiles default to ".env"; a missing file is
// not an error.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := read(envFiles)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForTools reads configuration like Load but skips validation, so the
// command-line tools run without a JWT secret.
func LoadForTools(envFiles ...string) (*Config, error) {
	return read(envFiles)
}

func read(envFiles []string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:         v.GetInt("port"),
		DBPath:       v.GetString("db_path"),
		JWTSecret:    v.GetString("jwt_secret"),
		TokenTTL:     v.GetDuration("token_ttl"),
		CookieSecure: v.GetBool("cookie_secure"),
		GitHub: GitHubConfig{
			ClientID:     v.GetString("github_client_id"),
			ClientSecret: v.GetString("github_client_secret"),
			CallbackURL:  v.GetString("github_callback_url"),
		},
		Log: logging.Options{
			Level:      v.GetString("log_level"),
			Format:     v.GetString("log_format"),
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
		},
		RedisURL:          v.GetString("redis_url"),
		AuthRateLimit:     v.GetInt("auth_rate_limit"),
		StrictTransitions: v.GetBool("tracker_strict_transitions"),
	}

	if cfg.GitHub.CallbackURL == "" {
		cfg.GitHub.CallbackURL = fmt.Sprintf("http://localhost:%d/api/auth/github/callback", cfg.Port)
	}

	loc, ok := i18n.Parse(v.GetString("default_locale"))
	if !ok {
		return nil, fmt.Errorf("config: DEFAULT_LOCALE %q is not one of en, ckb, kmr", v.GetString("default_locale"))
	}
	cfg.DefaultLocale = loc
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "data/applyhelp.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("github_client_id", "")
	v.SetDefault("github_client_secret", "")
	v.SetDefault("github_callback_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 100)
	v.SetDefault("log_max_backups", 10)
	v.SetDefault("log_max_age_days", 30)
	v.SetDefault("redis_url", "")
	v.SetDefault("auth_rate_limit", 10)
	v.SetDefault("tracker_strict_transitions", false)
	v.SetDefault("default_locale", string(i18n.English))
}

func (c *Config) validate() error {
	var problems []string
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Port))
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH is empty")
	}
	if len(c.JWTSecret) < MinSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d characters", MinSecretLength))
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q must be text or json", c.Log.Format))
	}
	if c.AuthRateLimit < 0 {
		problems = append(problems, "AUTH_RATE_LIMIT must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
