package config

import (
	"fmt"
	"net"
	"time"
)

// Config is the root configuration for the arrosage tooling. Values come
// from defaults overridden by ARROSAGE_-prefixed environment variables.
type Config struct {
	Redis    RedisConfig    `koanf:"redis"`
	Settings SettingsConfig `koanf:"settings"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

// RedisConfig holds the Redis connection parameters.
type RedisConfig struct {
	Host     string `koanf:"host"     validate:"required"`
	Port     int    `koanf:"port"     validate:"gt=0,lte=65535"`
	DB       int    `koanf:"db"       validate:"gte=0"`
	Password string `koanf:"password"`
	// Timeout Configuration
	PingTimeout  time.Duration `koanf:"ping_timeout"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// Addr returns the host:port address of the Redis server.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
}

// SettingsConfig holds the three tunable constants of the settings array.
type SettingsConfig struct {
	DefaultValue int `koanf:"default_value"`
	LastValue    int `koanf:"last_value"`
	ArraySize    int `koanf:"array_size" validate:"gte=1"`
}

// ServerConfig holds the HTTP API listen address.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"gt=0,lte=65535"`
}

// Addr returns the host:port listen address of the HTTP API.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Host:        "localhost",
			Port:        6379,
			DB:          0,
			Password:    "",
			PingTimeout: 10 * time.Second,
			DialTimeout: 5 * time.Second,
		},
		Settings: SettingsConfig{
			DefaultValue: 3600,
			LastValue:    0,
			ArraySize:    8,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
