// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one exists), loads them into structured Go types, and validates
// that required values are present so the service fails fast on a bad
// deployment.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional values (port, timeouts, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any of the code below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the CARPOOL_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore marks nesting:

		CARPOOL_SERVER__PORT        -> server.port
		CARPOOL_STORE__MAX_CONNS    -> store.max_conns

	The hosted store credentials are also accepted under the names the
	Supabase tooling exports (SUPABASE_URL, SUPABASE_ANON_KEY).
*/

const (
	// EnvPrefix is stripped from every application env var.
	EnvPrefix = "CARPOOL_"

	// ServiceName tags logs, traces and metrics.
	ServiceName = "carpool"
)

// Store drivers understood by server.NewStore.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// supabaseAliases maps the Supabase env var names onto koanf keys.
var supabaseAliases = map[string]string{
	"SUPABASE_URL":      "store.url",
	"SUPABASE_ANON_KEY": "store.key",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// StoreConfig selects and configures the table store backing the API.
//
// For the postgrest driver URL is the project URL and Key the anon key.
// For the postgres driver URL is a connection string and Key, when set,
// replaces the password found in it.
type StoreConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=postgrest postgres memory"`
	URL      string `koanf:"url" validate:"required_unless=Driver memory"`
	Key      string `koanf:"key" validate:"required_unless=Driver memory"`
	MaxConns int    `koanf:"max_conns" validate:"min=0"`
}

// DefaultConfig returns a Config populated with every default value.
// Values found in the environment are decoded on top of it.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "3001",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Driver:   DriverPostgREST,
			MaxConns: 10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
//
// Any error is returned to the caller; main decides to exit.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Supabase aliases first so that explicit CARPOOL_STORE__* vars win.
	err := k.Load(env.Provider("SUPABASE_", ".", func(s string) string {
		return supabaseAliases[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load supabase env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not configurable on their own.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// listKeys are decoded from comma-separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envKeyValue maps CARPOOL_SERVER__PORT to server.port and splits list
// values such as "http://a.test,http://b.test".
func envKeyValue(s, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if !listKeys[key] {
		return key, v
	}

	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Addr returns the listen address. The server binds every interface.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}
