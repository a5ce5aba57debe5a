package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/popdeck/pop/internal/pathutil"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Alarms    AlarmsConfig    `koanf:"alarms"`
	Notifiers NotifiersConfig `koanf:"notifiers"`
	Overlay   OverlayConfig   `koanf:"overlay"`
	Daemon    DaemonConfig    `koanf:"daemon"`
}

type ServerConfig struct {
	Port            int    `koanf:"port"`
	LogLevel        string `koanf:"log_level"`
	ReadTimeout     string `koanf:"read_timeout"`
	WriteTimeout    string `koanf:"write_timeout"`
	IdleTimeout     string `koanf:"idle_timeout"`
	ShutdownTimeout string `koanf:"shutdown_timeout"`
	PushPollTimeout string `koanf:"push_poll_timeout"`
}

type StorageConfig struct {
	LockTimeout  string `koanf:"lock_timeout"`
	LockRetry    string `koanf:"lock_retry"`
	LockMaxRetry int    `koanf:"lock_max_retry"`
	CacheSizeMax int    `koanf:"cache_size_max"`
}

type AlarmsConfig struct {
	TickInterval    string `koanf:"tick_interval"`
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

type NotifiersConfig struct {
	Telegram TelegramConfig `koanf:"telegram"`
	Slack    SlackConfig    `koanf:"slack"`
}

type TelegramConfig struct {
	Enabled       bool   `koanf:"enabled"`
	BotToken      string `koanf:"bot_token"`
	ChatID        int64  `koanf:"chat_id"`
	UpdateTimeout int    `koanf:"update_timeout"`
}

type SlackConfig struct {
	Enabled  bool   `koanf:"enabled"`
	BotToken string `koanf:"bot_token"`
	Channel  string `koanf:"channel"`
}

type OverlayConfig struct {
	IdleThreshold  string `koanf:"idle_threshold"`
	SnoozeWakeHour int    `koanf:"snooze_wake_hour"`
}

type DaemonConfig struct {
	ShutdownTimeout        string `koanf:"shutdown_timeout"`
	HealthCheckInterval    string `koanf:"health_check_interval"`
	StartupShutdownTimeout string `koanf:"startup_shutdown_timeout"`
	PreflightTimeout       string `koanf:"preflight_timeout"`
	StaleLockTTL           string `koanf:"stale_lock_ttl"`
	WorkspacePath          string `koanf:"workspace_path"`
}

const (
	DefaultWorkspaceID           = "default"
	DefaultServerPort            = 7525
	DefaultServerLogLevel        = "info"
	DefaultServerReadTimeout     = "10s"
	DefaultServerWriteTimeout    = "10s"
	DefaultServerIdleTimeout     = "60s"
	DefaultServerShutdownTimeout = "5s"
	DefaultServerPushPollTimeout = "25s"
	DefaultStorageLockTimeout    = "30s"
	DefaultStorageLockRetry      = "100ms"
	DefaultStorageLockMaxRetry   = 300
	DefaultStorageCacheSizeMax   = 1024 * 1024
	DefaultAlarmsTickInterval    = "1m"
	DefaultAlarmsShutdownTimeout = "30s"
	DefaultTelegramUpdateTimeout = 60
	DefaultOverlayIdleThreshold  = "5m"
	DefaultOverlaySnoozeWakeHour = 9
	DefaultDaemonShutdownTimeout = "30s"
	DefaultDaemonHealthCheckInterval    = "30s"
	DefaultDaemonStartupShutdownTimeout = "10s"
	DefaultDaemonPreflightTimeout       = "5s"
	DefaultDaemonStaleLockTTL    = "15m"
)

// Load builds the configuration from defaults, the config file, POP_*
// environment variables, and CLI flags, in increasing precedence.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                       DefaultServerPort,
		"server.log_level":                  DefaultServerLogLevel,
		"server.read_timeout":               DefaultServerReadTimeout,
		"server.write_timeout":              DefaultServerWriteTimeout,
		"server.idle_timeout":               DefaultServerIdleTimeout,
		"server.shutdown_timeout":           DefaultServerShutdownTimeout,
		"server.push_poll_timeout":          DefaultServerPushPollTimeout,
		"storage.lock_timeout":              DefaultStorageLockTimeout,
		"storage.lock_retry":                DefaultStorageLockRetry,
		"storage.lock_max_retry":            DefaultStorageLockMaxRetry,
		"storage.cache_size_max":            DefaultStorageCacheSizeMax,
		"alarms.tick_interval":              DefaultAlarmsTickInterval,
		"alarms.shutdown_timeout":           DefaultAlarmsShutdownTimeout,
		"notifiers.telegram.update_timeout": DefaultTelegramUpdateTimeout,
		"overlay.idle_threshold":            DefaultOverlayIdleThreshold,
		"overlay.snooze_wake_hour":          DefaultOverlaySnoozeWakeHour,
		"daemon.shutdown_timeout":           DefaultDaemonShutdownTimeout,
		"daemon.health_check_interval":      DefaultDaemonHealthCheckInterval,
		"daemon.startup_shutdown_timeout":   DefaultDaemonStartupShutdownTimeout,
		"daemon.preflight_timeout":           DefaultDaemonPreflightTimeout,
		"daemon.stale_lock_ttl":             DefaultDaemonStaleLockTTL,
		"daemon.workspace_path":             filepath.Join(os.Getenv("HOME"), ".pop", "workspaces"),
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".pop", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	k.Load(env.Provider("POP_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "POP_")), "_", ".", -1)
	}), nil)

	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	workspacePath, err := expandConfiguredPath(cfg.Daemon.WorkspacePath)
	if err != nil {
		return nil, err
	}
	if workspacePath != "" {
		cfg.Daemon.WorkspacePath = workspacePath
	}

	if token := os.Getenv("POP_TELEGRAM_BOT_TOKEN"); token != "" && cfg.Notifiers.Telegram.BotToken == "" {
		cfg.Notifiers.Telegram.BotToken = token
	}
	if token := os.Getenv("POP_SLACK_BOT_TOKEN"); token != "" && cfg.Notifiers.Slack.BotToken == "" {
		cfg.Notifiers.Slack.BotToken = token
	}

	return &cfg, nil
}

func expandConfiguredPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	expanded, err := pathutil.Expand(trimmed)
	if err != nil {
		return "", err
	}
	return expanded, nil
}
