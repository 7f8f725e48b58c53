package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the daemon's tunables, overridable via flags, env
// (POKERARBITER_*) or a config file — the same three-source precedence the
// teacher binds through viper in cmd/pokerchaind.
type Config struct {
	ListenAddr    string `mapstructure:"listen_addr"`
	ActionTimeout int64  `mapstructure:"action_timeout_seconds"`
}

func defaultConfig() Config {
	return Config{
		ListenAddr:    ":8080",
		ActionTimeout: 60,
	}
}

// loadConfig reads viper state bound to cmd's flags into a Config.
func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POKERARBITER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := defaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}

	if v.IsSet("listen_addr") {
		cfg.ListenAddr = v.GetString("listen_addr")
	}
	if v.IsSet("action_timeout_seconds") {
		cfg.ActionTimeout = v.GetInt64("action_timeout_seconds")
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}
	if timeout, _ := cmd.Flags().GetInt64("action-timeout"); timeout != 0 {
		cfg.ActionTimeout = timeout
	}
	return cfg, nil
}
