/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/boxoffice-api/boxoffice/pkg/api"
	"github.com/boxoffice-api/boxoffice/pkg/defaults"
	"github.com/boxoffice-api/boxoffice/pkg/server"
)

const envPrefix = "BOXOFFICE"

// Setting keys. Each is also a flag name and a config file key.
const (
	keyPort            = "port"
	keyAddress         = "address"
	keyRoutePrefix     = "route-prefix"
	keyAllowedOrigins  = "allowed-origins"
	keyRateLimit       = "rate-limit"
	keyRateLimitBurst  = "rate-limit-burst"
	keyShutdownTimeout = "shutdown-timeout"
	keyCommand         = "command"
	keyScript          = "script"
	keyWorkDir         = "workdir"
	keyMaxConcurrent   = "max-concurrent"
	keyMaxOutputBytes  = "max-output-bytes"
)

// envAliases binds settings to the unprefixed variables the API server reads.
var envAliases = map[string][]string{
	keyPort:        {server.EnvVarPort},
	keyRoutePrefix: {api.EnvVarRoutePrefix},
}

// newSettings returns a viper instance with defaults, environment bindings and
// the optional config file loaded. Precedence: flags, env, file, defaults.
func newSettings(configFile string) (*viper.Viper, error) {
	v := viper.New()

	command := defaults.InvokerCommand
	if os.Getenv(api.EnvVarHosted) != "" {
		command = defaults.InvokerHostedCommand
	}

	v.SetDefault(keyPort, defaults.ServerPort)
	v.SetDefault(keyAddress, "")
	v.SetDefault(keyRoutePrefix, "")
	v.SetDefault(keyAllowedOrigins, []string{})
	v.SetDefault(keyCommand, command)
	v.SetDefault(keyScript, defaults.InvokerScript)
	v.SetDefault(keyWorkDir, "")
	v.SetDefault(keyMaxConcurrent, defaults.InvokerMaxConcurrent)
	v.SetDefault(keyMaxOutputBytes, defaults.InvokerMaxOutputBytes)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	return v, nil
}

var settingKeys = []string{
	keyPort, keyAddress, keyRoutePrefix, keyAllowedOrigins, keyRateLimit,
	keyRateLimitBurst, keyShutdownTimeout, keyCommand, keyScript, keyWorkDir,
	keyMaxConcurrent, keyMaxOutputBytes,
}

// applyFlags copies explicitly set flags into v, overriding every other source.
func applyFlags(v *viper.Viper, cmd *cli.Command) {
	for _, key := range settingKeys {
		if !cmd.IsSet(key) {
			continue
		}
		switch key {
		case keyPort, keyRateLimit, keyRateLimitBurst, keyMaxConcurrent, keyMaxOutputBytes:
			v.Set(key, cmd.Int(key))
		case keyShutdownTimeout:
			v.Set(key, cmd.Duration(key))
		case keyAllowedOrigins:
			v.Set(key, cmd.StringSlice(key))
		default:
			v.Set(key, cmd.String(key))
		}
	}
}

// loadSettings resolves settings for cmd from all sources.
func loadSettings(cmd *cli.Command) (*viper.Viper, error) {
	v, err := newSettings(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(v, cmd)
	return v, nil
}

// apiConfig builds the application config from resolved settings.
func apiConfig(v *viper.Viper) (*api.Config, error) {
	cfg := &api.Config{
		RoutePrefix:    v.GetString(keyRoutePrefix),
		Command:        strings.TrimSpace(v.GetString(keyCommand)),
		Script:         v.GetString(keyScript),
		WorkDir:        v.GetString(keyWorkDir),
		MaxConcurrent:  v.GetInt64(keyMaxConcurrent),
		MaxOutputBytes: v.GetInt64(keyMaxOutputBytes),
	}

	if cfg.Command == "" {
		return nil, fmt.Errorf("%s must not be empty", keyCommand)
	}
	if cfg.MaxConcurrent < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", keyMaxConcurrent, cfg.MaxConcurrent)
	}
	if cfg.MaxOutputBytes < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", keyMaxOutputBytes, cfg.MaxOutputBytes)
	}
	return cfg, nil
}

// serverConfig builds the HTTP server config from resolved settings.
func serverConfig(v *viper.Viper) (*server.Config, error) {
	cfg := server.NewConfig()

	cfg.Port = v.GetInt(keyPort)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%s must be between 1 and 65535, got %d", keyPort, cfg.Port)
	}
	cfg.Address = v.GetString(keyAddress)
	cfg.AllowedOrigins = v.GetStringSlice(keyAllowedOrigins)

	// Server tuning keeps the server defaults unless a source sets it.
	if v.IsSet(keyRateLimit) {
		limit := v.GetFloat64(keyRateLimit)
		if limit <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %v", keyRateLimit, limit)
		}
		cfg.RateLimit = rate.Limit(limit)
	}
	if v.IsSet(keyRateLimitBurst) {
		cfg.RateLimitBurst = v.GetInt(keyRateLimitBurst)
		if cfg.RateLimitBurst < 1 {
			return nil, fmt.Errorf("%s must be positive, got %d", keyRateLimitBurst, cfg.RateLimitBurst)
		}
	}
	if v.IsSet(keyShutdownTimeout) {
		d := v.GetDuration(keyShutdownTimeout)
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", keyShutdownTimeout, d)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
