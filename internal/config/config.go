// Package config loads server settings from flags, environment and an
// optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"olas-server/internal/nostr"
)

var DefaultRelays = []string{
	"wss://relay.olas.app",
	"wss://relay.damus.io",
	"wss://relay.primal.net",
	"wss://nos.lol",
}

type Config struct {
	Port           string
	RedisURL       string
	LogLevel       string
	Relays         []string
	ServerSecret   string
	OutboxPath     string
	BlossomServer  string
	Platform       string
	Build          string
	ClientName     string // added as a "client" tag to published events; empty disables
	I18nDir        string
	Language       string
	FetchTimeout   time.Duration
	PublishTimeout time.Duration
	ReactRate      float64 // reactions per second per session
	ReactBurst     int
	SecureCookies  bool
}

// keys maps each setting to its flag name. Environment variables are the
// upper-cased key (PORT, REDIS_URL, ...).
var keys = map[string]string{
	"port":            "port",
	"redis_url":       "redis-url",
	"log_level":       "log-level",
	"relays":          "relays",
	"server_secret":   "server-secret",
	"outbox_path":     "outbox-path",
	"blossom_server":  "blossom-server",
	"platform":        "platform",
	"build":           "build",
	"client_name":     "client-name",
	"i18n_dir":        "i18n-dir",
	"language":        "language",
	"fetch_timeout":   "fetch-timeout",
	"publish_timeout": "publish-timeout",
	"react_rate":      "react-rate",
	"react_burst":     "react-burst",
	"secure_cookies":  "secure-cookies",
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("olas-server", pflag.ContinueOnError)
	fs.String("config", "", "path to a JSON or YAML config file")
	fs.String("port", "3000", "HTTP listen port")
	fs.String("redis-url", "", "redis URL; in-memory cache when empty")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("relays", strings.Join(DefaultRelays, ","), "comma separated relay URLs")
	fs.String("server-secret", "", "secret for CSRF tokens; random per process when empty")
	fs.String("outbox-path", "outbox.db", "sqlite file for unpublished events")
	fs.String("blossom-server", "https://blossom.primal.net", "default media server")
	fs.String("platform", "web", "platform shown in the settings footer")
	fs.String("build", "dev", "build shown in the settings footer")
	fs.String("client-name", "olas-server", "client tag for published events")
	fs.String("i18n-dir", "config/i18n", "directory holding <language>.json string files")
	fs.String("language", "en", "UI language")
	fs.Duration("fetch-timeout", 5*time.Second, "relay fetch timeout")
	fs.Duration("publish-timeout", 8*time.Second, "relay publish timeout")
	fs.Float64("react-rate", 1, "reactions per second allowed per session")
	fs.Int("react-burst", 5, "reaction burst allowed per session")
	fs.Bool("secure-cookies", false, "mark cookies Secure (behind TLS)")
	return fs
}

// Load parses args (without the program name) and the environment
func Load(args []string) (*Config, error) {
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, flag := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		RedisURL:       v.GetString("redis_url"),
		LogLevel:       v.GetString("log_level"),
		Relays:         nostr.NormalizeRelayURLs(splitList(v.Get("relays"))),
		ServerSecret:   v.GetString("server_secret"),
		OutboxPath:     v.GetString("outbox_path"),
		BlossomServer:  v.GetString("blossom_server"),
		Platform:       v.GetString("platform"),
		Build:          v.GetString("build"),
		ClientName:     v.GetString("client_name"),
		I18nDir:        v.GetString("i18n_dir"),
		Language:       v.GetString("language"),
		FetchTimeout:   v.GetDuration("fetch_timeout"),
		PublishTimeout: v.GetDuration("publish_timeout"),
		ReactRate:      v.GetFloat64("react_rate"),
		ReactBurst:     v.GetInt("react_burst"),
		SecureCookies:  v.GetBool("secure_cookies"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if len(c.Relays) == 0 {
		return errors.New("at least one relay is required")
	}
	if c.FetchTimeout <= 0 || c.PublishTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.ReactRate <= 0 || c.ReactBurst <= 0 {
		return errors.New("react rate and burst must be positive")
	}
	return nil
}

// ClientTag returns the tag identifying this server on published events
func (c *Config) ClientTag() []string {
	if c.ClientName == "" {
		return nil
	}
	return []string{"client", c.ClientName}
}

// splitList accepts a comma separated string (flags, env) or a list (config file)
func splitList(value interface{}) []string {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []interface{}:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
