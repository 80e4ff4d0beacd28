package config

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// MustInitConfig initializes configuration from an .env file or environment
// variables. If configFile exists it loads from the file, otherwise it binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	var (
		vpr = viper.New()
		cfg Config
	)

	vpr.SetDefault("LOG_LEVEL", "info")
	vpr.SetDefault("CURRENCY", "EUR")
	vpr.SetDefault("API_BASE_URL", "https://services-api.ryanair.com/farfnd/v4")
	vpr.SetDefault("API_HOME_URL", "https://www.ryanair.com")
	vpr.SetDefault("API_TIMEOUT", "10s")
	vpr.SetDefault("API_MAX_RETRIES", 4)
	vpr.SetDefault("API_BACKOFF_BASE", "500ms")
	vpr.SetDefault("API_SESSION_WARMUP", true)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	// Bind every environment variable named in the Config struct.
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))

	if err := vpr.Unmarshal(&cfg); err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// bindEnvFromType walks the mapstructure tags, recursing into squashed
// structs, so AutomaticEnv picks up variables that are not in the file.
func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]

		isSquash := false

		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true

				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)

			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)
		}
	}
}
