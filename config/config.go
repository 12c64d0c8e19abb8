// Package config loads the cartaz YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/binding"
	"github.com/novotemporh/cartaz/share"
)

// EnvPath names the environment variable holding the config path.
const EnvPath = "CARTAZ_CONFIG"

// DefaultPath is tried when neither a flag nor EnvPath names a file.
const DefaultPath = "cartaz.yaml"

// Config is the root configuration.
type Config struct {
	Render RenderConfig
	Server ServerConfig
	Store  StoreConfig
	Share  ShareConfig
}

// RenderConfig controls the engine.
type RenderConfig struct {
	DecodeTimeout time.Duration // per-illustration load limit
	FontDir       string        // extra TTF/OTF files named Family-Weight.ttf
	FontFamily    string        // family used for every text; empty means the built-in one
	AssetsDir     string        // brand asset overrides named <asset>.png
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig locates the request database. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ShareConfig picks the share target.
type ShareConfig struct {
	Type            string // "dir", "minio" or "none"
	Dir             string // target of "dir" and fallback of "minio"
	Caption         binding.Caption
	CompiledCaption binding.Caption
	Minio           share.MinioConfig
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Render rawRenderConfig `yaml:"render"`
	Server rawServerConfig `yaml:"server"`
	Store  StoreConfig     `yaml:"store"`
	Share  rawShareConfig  `yaml:"share"`
}

type rawRenderConfig struct {
	DecodeTimeout string `yaml:"decode_timeout"`
	FontDir       string `yaml:"font_dir"`
	FontFamily    string `yaml:"font_family"`
	AssetsDir     string `yaml:"assets_dir"`
}

type rawServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type rawShareConfig struct {
	Type            string           `yaml:"type"`
	Dir             string           `yaml:"dir"`
	Caption         *binding.Caption `yaml:"caption"`
	CompiledCaption *binding.Caption `yaml:"compiled_caption"`
	Minio           rawMinioConfig   `yaml:"minio"`
}

type rawMinioConfig struct {
	Endpoint         string `yaml:"endpoint"`
	PublicEndpoint   string `yaml:"public_endpoint"`
	AccessKeyID      string `yaml:"access_key_id"`
	SecretAccessKey  string `yaml:"secret_access_key"`
	Bucket           string `yaml:"bucket"`
	Region           string `yaml:"region"`
	UseSSL           bool   `yaml:"use_ssl"`
	AutoCreateBucket bool   `yaml:"auto_create_bucket"`
	Prefix           string `yaml:"prefix"`
	URLExpiry        string `yaml:"url_expiry"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Render: RenderConfig{DecodeTimeout: assets.DefaultDecodeTimeout},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{Path: "cartaz.db"},
		Share: ShareConfig{
			Type:            "dir",
			Dir:             "shared",
			Caption:         binding.DefaultCaption,
			CompiledCaption: binding.DefaultCompiledCaption,
			Minio:           share.MinioConfig{URLExpiry: 24 * time.Hour},
		},
	}
}

// Resolve picks the config file: flagPath, then $CARTAZ_CONFIG, then
// ./cartaz.yaml if it exists. An empty result means built-in defaults.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// LoadResolved loads the file Resolve picks, or the defaults. It returns
// the path actually used.
func LoadResolved(flagPath string) (*Config, string, error) {
	path := Resolve(flagPath)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := expandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"render.decode_timeout", raw.Render.DecodeTimeout, &cfg.Render.DecodeTimeout},
		{"server.read_timeout", raw.Server.ReadTimeout, &cfg.Server.ReadTimeout},
		{"server.write_timeout", raw.Server.WriteTimeout, &cfg.Server.WriteTimeout},
		{"server.shutdown_timeout", raw.Server.ShutdownTimeout, &cfg.Server.ShutdownTimeout},
		{"share.minio.url_expiry", raw.Share.Minio.URLExpiry, &cfg.Share.Minio.URLExpiry},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = v
	}

	cfg.Render.FontDir = raw.Render.FontDir
	cfg.Render.FontFamily = raw.Render.FontFamily
	cfg.Render.AssetsDir = raw.Render.AssetsDir
	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.Store.Path != "" {
		cfg.Store.Path = raw.Store.Path
	}
	if raw.Share.Type != "" {
		cfg.Share.Type = strings.ToLower(strings.TrimSpace(raw.Share.Type))
	}
	if raw.Share.Dir != "" {
		cfg.Share.Dir = raw.Share.Dir
	}
	if raw.Share.Caption != nil {
		cfg.Share.Caption = *raw.Share.Caption
	}
	if raw.Share.CompiledCaption != nil {
		cfg.Share.CompiledCaption = *raw.Share.CompiledCaption
	}
	m := raw.Share.Minio
	cfg.Share.Minio = share.MinioConfig{
		Endpoint:         m.Endpoint,
		PublicEndpoint:   m.PublicEndpoint,
		AccessKeyID:      m.AccessKeyID,
		SecretAccessKey:  m.SecretAccessKey,
		Bucket:           m.Bucket,
		Region:           m.Region,
		UseSSL:           m.UseSSL,
		AutoCreateBucket: m.AutoCreateBucket,
		Prefix:           m.Prefix,
		URLExpiry:        cfg.Share.Minio.URLExpiry,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnv substitutes set environment variables only, so caption
// placeholders such as ${title} survive.
func expandEnv(s string) string {
	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}

func validate(cfg *Config) error {
	var errs []error
	if cfg.Render.DecodeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("render.decode_timeout must be positive, got %v", cfg.Render.DecodeTimeout))
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch cfg.Share.Type {
	case "none":
	case "dir":
		if cfg.Share.Dir == "" {
			errs = append(errs, errors.New("share.dir is required for the dir target"))
		}
	case "minio":
		if cfg.Share.Minio.Endpoint == "" || cfg.Share.Minio.Bucket == "" {
			errs = append(errs, errors.New("share.minio.endpoint and share.minio.bucket are required for the minio target"))
		}
	default:
		errs = append(errs, fmt.Errorf("share.type must be dir, minio or none, got %q", cfg.Share.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
