package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → .env → environment variables.
// An empty configFile falls back to IMS_CONFIG_FILE, then ims.yaml.
func Load(configFile string) {
	// Start with defaults
	LoadDefault()

	if configFile == "" {
		configFile = os.Getenv("IMS_CONFIG_FILE")
	}
	if configFile == "" {
		configFile = "ims.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file: %v, using defaults", err)
	} else {
		log.Printf("Successfully loaded config from file: %s", configFile)
	}

	// .env values never override variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Apply environment variable overrides (highest priority)
	ApplyEnvOverrides()
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := defaultConfig

	// Merge YAML values over defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			MaxRequestSize:  1048576,
			ShutdownTimeout: 30,
		},
		Cors: corsConfig{},
	},
}

type Common struct {
	Log  logConfig  `yaml:"log"`
	Http httpConfig `yaml:"http"`
	Cors corsConfig `yaml:"cors"`
}

type logConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // "json" or "console"
}

type httpConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	MaxRequestSize  int64  `yaml:"max_request_size"` // bytes
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
}

func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c httpConfig) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

type corsConfig struct {
	AllowOrigins []string `yaml:"allow_origins"` // empty allows all origins
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Cors() corsConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Cors
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if logLevel := os.Getenv("IMS_LOG_LEVEL"); logLevel != "" {
		_loaded.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("IMS_LOG_FORMAT"); logFormat != "" {
		_loaded.Common.Log.Format = logFormat
	}

	if httpHost := os.Getenv("IMS_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("IMS_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}
	if maxRequestSize := os.Getenv("IMS_HTTP_MAX_REQUEST_SIZE"); maxRequestSize != "" {
		if size, err := strconv.ParseInt(maxRequestSize, 10, 64); err == nil {
			_loaded.Common.Http.MaxRequestSize = size
		}
	}
	if shutdownTimeout := os.Getenv("IMS_HTTP_SHUTDOWN_TIMEOUT"); shutdownTimeout != "" {
		if seconds, err := strconv.Atoi(shutdownTimeout); err == nil {
			_loaded.Common.Http.ShutdownTimeout = seconds
		}
	}

	if origins := os.Getenv("IMS_CORS_ALLOW_ORIGINS"); origins != "" {
		_loaded.Common.Cors.AllowOrigins = strings.Split(origins, ",")
	}
}
