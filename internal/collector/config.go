package collector

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"netinventory/internal/scrapers/webui"
	"netinventory/pkg/configutil"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080
)

type RateLimitConfig struct {
	// PerSecond is the sustained number of collections admitted per second,
	// a negative value disables limiting.
	PerSecond float64 `json:"per_second"`
	Burst     int     `json:"burst"`
}

type BrowserConfig struct {
	// Headless defaults to true.
	Headless            *bool `json:"headless"`
	NavigationTimeoutMs int   `json:"navigation_timeout_ms"`
	LoginSettleMs       int   `json:"login_settle_ms"`
	PostLoginMs         int   `json:"post_login_ms"`
	// SkipInstall assumes the playwright driver is already installed.
	SkipInstall bool `json:"skip_install"`
}

func (c BrowserConfig) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

func (c BrowserConfig) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

func (c BrowserConfig) Timing() webui.Timing {
	return webui.Timing{
		LoginSettle: time.Duration(c.LoginSettleMs) * time.Millisecond,
		PostLogin:   time.Duration(c.PostLoginMs) * time.Millisecond,
	}
}

type NetgearConfig struct {
	TimeoutMs int `json:"timeout_ms"`
}

func (c NetgearConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type Config struct {
	Host        string          `json:"host"`
	Port        int             `json:"port"`
	AllowedIPs  []string        `json:"allowed_ips"`
	Token       string          `json:"token"`
	TokenSha256 string          `json:"token_sha256"`
	RateLimit   RateLimitConfig `json:"rate_limit"`
	Browser     BrowserConfig   `json:"browser"`
	Netgear     NetgearConfig   `json:"netgear"`
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = 2
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 4
	}
	if c.Browser.NavigationTimeoutMs <= 0 {
		c.Browser.NavigationTimeoutMs = 15_000
	}
	if c.Browser.LoginSettleMs <= 0 {
		c.Browser.LoginSettleMs = int(webui.DefaultTiming.LoginSettle.Milliseconds())
	}
	if c.Browser.PostLoginMs <= 0 {
		c.Browser.PostLoginMs = int(webui.DefaultTiming.PostLogin.Milliseconds())
	}
	if c.Netgear.TimeoutMs <= 0 {
		c.Netgear.TimeoutMs = 10_000
	}
	c.Token = strings.TrimSpace(c.Token)
	c.TokenSha256 = strings.ToLower(strings.TrimSpace(c.TokenSha256))
}

// LookupEnv is the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

func configFromEnv(lookup LookupEnv) (Config, error) {
	var cfg Config
	if host, ok := lookup("COLLECTOR_HOST"); ok {
		cfg.Host = host
	}
	if port, ok := lookup("COLLECTOR_PORT"); ok {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("COLLECTOR_PORT: %w", err)
		}
		cfg.Port = parsed
	}
	if allowed, ok := lookup("COLLECTOR_ALLOWED_IPS"); ok {
		cfg.AllowedIPs = strings.Split(allowed, ",")
	}
	if token, ok := lookup("COLLECTOR_TOKEN"); ok {
		cfg.Token = token
	}
	return cfg, nil
}

// LoadConfig reads path (and its .local override). When neither file exists the
// COLLECTOR_* environment variables are used instead. lookup may be nil.
func LoadConfig(path string, lookup LookupEnv) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, configutil.ErrNotFound) {
		cfg, err = configFromEnv(lookup)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load collector config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}
