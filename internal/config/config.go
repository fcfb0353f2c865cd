package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	BasePath        string   `mapstructure:"BASE_PATH"`
	SignalingServer string   `mapstructure:"SIGNALING_SERVER"`
	AllowedOrigins  []string `mapstructure:"ALLOWED_ORIGINS"`
	ICEServers      []string `mapstructure:"ICE_SERVERS"`
	RateLimitPerMin int      `mapstructure:"RATE_LIMIT_PER_MIN"`
	RateLimitBurst  int      `mapstructure:"RATE_LIMIT_BURST"`
	LogLevel        string   `mapstructure:"LOG_LEVEL"`
	LogFile         string   `mapstructure:"LOG_FILE"`
}

var defaults = map[string]any{
	"PORT":             "8080",
	"ENV":              "development",
	"BASE_PATH":        "/api/video-calls",
	"SIGNALING_SERVER": "http://localhost:4000",
	"ALLOWED_ORIGINS":  "http://localhost:3000,http://localhost:3001",
	"ICE_SERVERS": strings.Join([]string{
		"stun:stun.l.google.com:19302",
		"stun:stun1.l.google.com:19302",
		"stun:stun2.l.google.com:19302",
		"stun:stun3.l.google.com:19302",
		"stun:stun4.l.google.com:19302",
	}, ","),
	"RATE_LIMIT_PER_MIN": 0,
	"RATE_LIMIT_BURST":   20,
	"LOG_LEVEL":          "info",
	"LOG_FILE":           "",
}

// New returns a viper instance with defaults and environment binding in
// place. Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

// Load reads the optional config file and unmarshals everything into a
// Config. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.AllowedOrigins = trimList(cfg.AllowedOrigins)
	cfg.ICEServers = trimList(cfg.ICEServers)
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// trimList drops blanks left over from comma separated env values.
func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
