package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ARROSAGE_"

// Load builds the configuration from defaults overridden by environment
// variables, then validates it. ARROSAGE_REDIS_HOST maps to redis.host,
// ARROSAGE_SETTINGS_DEFAULT_VALUE to settings.default_value, and so on.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key string, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return unmarshalAndValidate(k)
}

// envKeyPaths maps flattened environment variable names to config paths.
// Multi-word leaves cannot be derived from underscores alone, so they are
// listed explicitly; everything else splits on the first underscore.
var envKeyPaths = map[string]string{
	"REDIS_PING_TIMEOUT":     "redis.ping_timeout",
	"REDIS_DIAL_TIMEOUT":     "redis.dial_timeout",
	"REDIS_READ_TIMEOUT":     "redis.read_timeout",
	"REDIS_WRITE_TIMEOUT":    "redis.write_timeout",
	"SETTINGS_DEFAULT_VALUE": "settings.default_value",
	"SETTINGS_LAST_VALUE":    "settings.last_value",
	"SETTINGS_ARRAY_SIZE":    "settings.array_size",
}

func transformEnvKey(s string) string {
	if path, ok := envKeyPaths[s]; ok {
		return path
	}
	parts := strings.SplitN(strings.ToLower(s), "_", 2)
	return strings.Join(parts, ".")
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var config Config
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}
