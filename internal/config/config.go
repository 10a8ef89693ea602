package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/stellartoml/internal/document"
	"github.com/danmuck/stellartoml/internal/manifest"
)

// Config is the tomlctl configuration. Zero values are never used directly;
// Load starts from Default and overrides only keys present in the file.
type Config struct {
	ListenAddr        string
	Timeout           time.Duration
	MaxBodyBytes      int64
	ErrorExcerptBytes int
	UserAgent         string
	Parser            string
	Policy            string
	AllowInsecure     bool
	CorsOrigins       []string
	LogLevel          string
}

type fileConfig struct {
	ListenAddr        string   `toml:"listen_addr"`
	Timeout           string   `toml:"timeout"`
	MaxBodyBytes      int64    `toml:"max_body_bytes"`
	ErrorExcerptBytes int      `toml:"error_excerpt_bytes"`
	UserAgent         string   `toml:"user_agent"`
	Parser            string   `toml:"parser"`
	Policy            string   `toml:"policy"`
	AllowInsecure     bool     `toml:"allow_insecure"`
	CorsOrigins       []string `toml:"cors_origins"`
	LogLevel          string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		ListenAddr:        ":9300",
		Timeout:           10 * time.Second,
		MaxBodyBytes:      1 << 20,
		ErrorExcerptBytes: 512,
		UserAgent:         "stellartoml/0.1",
		Parser:            "burntsushi",
		Policy:            "abort",
		CorsOrigins:       []string{},
		LogLevel:          "info",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("max_body_bytes") {
		cfg.MaxBodyBytes = raw.MaxBodyBytes
	}
	if meta.IsDefined("error_excerpt_bytes") {
		cfg.ErrorExcerptBytes = raw.ErrorExcerptBytes
	}
	if meta.IsDefined("user_agent") {
		cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	}
	if meta.IsDefined("parser") {
		cfg.Parser = strings.TrimSpace(raw.Parser)
	}
	if meta.IsDefined("policy") {
		cfg.Policy = strings.TrimSpace(raw.Policy)
	}
	if meta.IsDefined("allow_insecure") {
		cfg.AllowInsecure = raw.AllowInsecure
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("config missing listen_addr")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("config timeout must not be negative")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("config max_body_bytes must be positive")
	}
	if cfg.ErrorExcerptBytes < 0 {
		return fmt.Errorf("config error_excerpt_bytes must not be negative")
	}
	if _, err := document.ParserByName(cfg.Parser); err != nil {
		return fmt.Errorf("config parser invalid: %w", err)
	}
	if _, err := manifest.ParsePolicy(cfg.Policy); err != nil {
		return fmt.Errorf("config policy invalid: %w", err)
	}
	for i, origin := range cfg.CorsOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors_origins[%d] invalid: %q", i, origin)
		}
	}
	return nil
}

// ParserImpl returns the document parser named by cfg.Parser.
func (cfg Config) ParserImpl() document.Parser {
	p, err := document.ParserByName(cfg.Parser)
	if err != nil {
		return document.Default
	}
	return p
}

// BindPolicy returns the binding policy named by cfg.Policy.
func (cfg Config) BindPolicy() manifest.Policy {
	p, _ := manifest.ParsePolicy(cfg.Policy)
	return p
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
