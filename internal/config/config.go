// Package config loads the monitor's settings from flags, environment
// variables (XRBRIDGE_* prefix) and an optional xrbridge.yaml config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the monitor's runtime settings.
type Config struct {
	ListenAddr       string        `mapstructure:"listen_addr"`
	LogLevel         string        `mapstructure:"log_level"`
	FullRegistry     bool          `mapstructure:"full_registry"`
	TrackerNameHint  string        `mapstructure:"tracker_name_hint"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`
}

// Load parses flags and merges them with environment variables and the
// optional config file. args excludes the program name.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("xrbridge-monitor", pflag.ContinueOnError)
	flags.String("listen-addr", ":8080", "monitor HTTP listen address")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("full-registry", true, "create the reserved controller slots")
	flags.String("tracker-name-hint", "tracker", "substring matched against enumerated device names")
	flags.Duration("poll-interval", 50*time.Millisecond, "connection poll interval")
	flags.Duration("snapshot-interval", time.Second, "full snapshot broadcast interval")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("xrbridge")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err) // flag names are static; a bind failure is a bug
		}
	})

	v.SetConfigName("xrbridge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLevel maps a config log level string onto a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}
