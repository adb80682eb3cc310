// Package config loads the layered YAML + environment configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."
	defaultEnv  = "local"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Postgres enables the optional alert archive when set.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Location configures the platform provider and acquisition bounds.
	Location *LocationConfig `json:"location" yaml:"location"`

	// SOS configures the trigger countdown.
	SOS *SOSConfig `json:"sos" yaml:"sos"`

	// QRCode configures the emergency card generator.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LocationConfig defines the location provider selection and the
// acquisition bounds. The duration defaults mirror the reference client:
// 10s one-shot timeout with a 60s cache tolerance, 30s between tracking
// readings with a 10s freshness tolerance.
type LocationConfig struct {
	// Provider selects the platform boundary: "static", "remote" or "none".
	Provider string `json:"provider" yaml:"provider"`

	OneShotTimeout  time.Duration `json:"oneShotTimeout" yaml:"oneShotTimeout"`
	CacheMaxAge     time.Duration `json:"cacheMaxAge" yaml:"cacheMaxAge"`
	TrackingTimeout time.Duration `json:"trackingTimeout" yaml:"trackingTimeout"`
	TrackingMaxAge  time.Duration `json:"trackingMaxAge" yaml:"trackingMaxAge"`

	Static *StaticProviderConfig `json:"static" yaml:"static"`
	Remote *RemoteProviderConfig `json:"remote" yaml:"remote"`
}

// StaticProviderConfig drives the development provider with a fixed fix.
type StaticProviderConfig struct {
	Latitude       float64       `json:"latitude" yaml:"latitude"`
	Longitude      float64       `json:"longitude" yaml:"longitude"`
	AccuracyMeters float64       `json:"accuracyMeters" yaml:"accuracyMeters"`
	Interval       time.Duration `json:"interval" yaml:"interval"`
}

// RemoteProviderConfig points at a companion-device location bridge.
type RemoteProviderConfig struct {
	Endpoint     string        `json:"endpoint" yaml:"endpoint"`
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// SOSConfig defines the SOS trigger behavior.
type SOSConfig struct {
	// Countdown is the arm-to-trigger delay; pressing again within the
	// window cancels.
	Countdown time.Duration `json:"countdown" yaml:"countdown"`
}

// QRCodeConfig defines emergency card generation parameters.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// New loads the configuration for the environment named by ENV,
// defaulting to "local".
func New() (*Config, error) {
	currEnv := os.Getenv("ENV")
	if currEnv == "" {
		currEnv = defaultEnv
	}

	return LoadWithEnv[Config](currEnv, "config")
}

// LoadWithEnv loads <env>.yaml through koanf and applies environment
// variable overrides (ENV_VAR_NAME -> env.var.name).
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}
