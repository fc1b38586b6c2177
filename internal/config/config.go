// Package config loads application configuration from command-line flags and
// GHACTIVITY_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable Load reads,
// e.g. GHACTIVITY_API_URL.
const EnvPrefix = "GHACTIVITY"

// MaxPages is the deepest page GitHub serves for a user's event feed
// (300 events at the default 30 per page).
const MaxPages = 10

// Keys shared by flags, environment variables and viper lookups.
const (
	KeyAPIURL          = "api_url"
	KeyUserAgent       = "user_agent"
	KeyPages           = "pages"
	KeyWaitOnRateLimit = "wait_on_rate_limit"
	KeyLogLevel        = "log_level"
	KeyNoColor         = "no_color"
)

// Defaults.
const (
	DefaultAPIURL    = "https://api.github.com/"
	DefaultUserAgent = "ghactivity"
	DefaultPages     = 1
	DefaultLogLevel  = "warn"
)

// Config holds the ambient settings of one invocation.
type Config struct {
	APIURL          string
	UserAgent       string
	Pages           int
	WaitOnRateLimit bool
	LogLevel        slog.Level
	NoColor         bool
}

// RegisterFlags adds the configuration flags to fs and binds each to its
// viper key, so a flag set on the command line wins over the environment.
func RegisterFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("api-url", DefaultAPIURL, "GitHub REST API base URL")
	fs.String("user-agent", DefaultUserAgent, "User-Agent header sent to GitHub")
	fs.Int("pages", DefaultPages, fmt.Sprintf("number of feed pages to fetch (1-%d)", MaxPages))
	fs.Bool("wait-on-rate-limit", false, "sleep through GitHub secondary rate limits instead of failing")
	fs.String("log-level", DefaultLogLevel, "log level on stderr: debug, info, warn, error")
	fs.Bool("no-color", false, "disable colored output")

	bindings := map[string]string{
		KeyAPIURL:          "api-url",
		KeyUserAgent:       "user-agent",
		KeyPages:           "pages",
		KeyWaitOnRateLimit: "wait-on-rate-limit",
		KeyLogLevel:        "log-level",
		KeyNoColor:         "no-color",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", flag, err)
		}
	}
	return nil
}

// New returns a viper instance with defaults and GHACTIVITY_* env lookup set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyPages, DefaultPages)
	v.SetDefault(KeyWaitOnRateLimit, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyNoColor, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	apiURL := strings.TrimSpace(v.GetString(KeyAPIURL))
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q is invalid (--api-url or %s_API_URL)", apiURL, EnvPrefix)
	}

	pages := v.GetInt(KeyPages)
	if pages < 1 || pages > MaxPages {
		return nil, fmt.Errorf("pages must be between 1 and %d, got %d (--pages or %s_PAGES)", MaxPages, pages, EnvPrefix)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("log level %q is invalid (--log-level or %s_LOG_LEVEL): %w", v.GetString(KeyLogLevel), EnvPrefix, err)
	}

	userAgent := strings.TrimSpace(v.GetString(KeyUserAgent))
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Config{
		APIURL:          apiURL,
		UserAgent:       userAgent,
		Pages:           pages,
		WaitOnRateLimit: v.GetBool(KeyWaitOnRateLimit),
		LogLevel:        level,
		NoColor:         v.GetBool(KeyNoColor),
	}, nil
}
