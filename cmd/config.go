package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".vpsbot"
	configFileName = "config.toml"
	envPrefix      = "VPSBOT"
	configPathEnv  = "VPSBOT_CONFIG"
)

// loadConfig reads ~/.vpsbot/config.toml (or $VPSBOT_CONFIG) on top of the
// defaults. A missing file is not an error. Every key can be overridden with
// VPSBOT_<SECTION>_<KEY>.
func loadConfig() (*viper.Viper, error) {
	cfg := viper.New()
	setConfigDefaults(cfg)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	path := os.Getenv(configPathEnv)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, configDirName, configFileName)
	}

	cfg.SetConfigFile(path)
	cfg.SetConfigType("toml")
	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return cfg, nil
}

func setConfigDefaults(cfg *viper.Viper) {
	cfg.SetDefault("sessions.path", "")
	cfg.SetDefault("sessions.format", "toml")
	cfg.SetDefault("sessions.ttl", domain.SessionTTL)
	cfg.SetDefault("sessions.strict_ttl", false)
	cfg.SetDefault("sweep.interval", domain.SweepInterval)
	cfg.SetDefault("sampler.interval", "1s")
	cfg.SetDefault("sampler.match", string(domain.MatchByRank))
	cfg.SetDefault("ssh.dial_timeout", "10s")
	cfg.SetDefault("ssh.known_hosts", "")
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("log.format", "text")
	cfg.SetDefault("secrets.dir", "")
	cfg.SetDefault("targets.path", "")
}
