// Package config reads the backend configuration.
//
// Values are read from an optional YAML file named by CONFIG_FILE and
// then from environment variables, which take precedence:
//
//	GIN_MODE            gin mode, "release" when unset
//	LOG_FORMAT          "human" or "json"
//	API_URL             external URL of the API, used for links
//	CORS_ALLOW_ORIGINS  space separated list of allowed origins
//	ENABLE_PPROF        "true" registers the pprof routes
//	DATA_DIR            directory of the database file
//	CAPACITY_PER_DAY    production hours per day for load analysis
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	ErrAPIURLInvalid      = errors.New("the API_URL must be an absolute URL")
	ErrCapacityInvalid    = errors.New("the capacity per day must be a positive number of hours")
	ErrLogFormatInvalid   = errors.New("the log format must be 'human' or 'json'")
	ErrConfigFileNotFound = errors.New("the configuration file could not be read")
)

// DefaultCapacityPerDay is the capacity used when none is configured.
var DefaultCapacityPerDay = decimal.NewFromFloat(7.5)

type Config struct {
	GinMode          string
	LogFormat        string // empty means human in debug mode, json otherwise
	APIURL           *url.URL
	CORSAllowOrigins []string
	EnablePprof      bool
	DataDir          string
	CapacityPerDay   decimal.Decimal
}

// file is the layout of the YAML configuration file.
type file struct {
	GinMode          string   `yaml:"gin_mode"`
	LogFormat        string   `yaml:"log_format"`
	APIURL           string   `yaml:"api_url"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	EnablePprof      bool     `yaml:"enable_pprof"`
	DataDir          string   `yaml:"data_dir"`
	CapacityPerDay   string   `yaml:"capacity_per_day"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	u, _ := url.Parse("http://localhost:8080")

	return Config{
		GinMode:        "release",
		APIURL:         u,
		DataDir:        "data",
		CapacityPerDay: DefaultCapacityPerDay,
	}
}

// Load returns the configuration from the file named by CONFIG_FILE, if
// set, and the environment.
func Load() (Config, error) {
	cfg := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		f, err := readFile(path)
		if err != nil {
			return Config{}, err
		}

		if err := cfg.apply(f); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.apply(fromEnv()); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func readFile(path string) (file, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return file{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, err)
	}

	var f file
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return file{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return f, nil
}

func fromEnv() file {
	f := file{
		GinMode:        os.Getenv("GIN_MODE"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
		APIURL:         os.Getenv("API_URL"),
		DataDir:        os.Getenv("DATA_DIR"),
		CapacityPerDay: os.Getenv("CAPACITY_PER_DAY"),
		EnablePprof:    os.Getenv("ENABLE_PPROF") == "true",
	}

	if origins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		f.CORSAllowOrigins = strings.Fields(origins)
	}

	return f
}

// apply overwrites the configuration with all values set in f.
func (c *Config) apply(f file) error {
	if f.GinMode != "" {
		c.GinMode = f.GinMode
	}

	if f.LogFormat != "" {
		if f.LogFormat != "human" && f.LogFormat != "json" {
			return ErrLogFormatInvalid
		}
		c.LogFormat = f.LogFormat
	}

	if f.APIURL != "" {
		u, err := url.Parse(f.APIURL)
		if err != nil || !u.IsAbs() {
			return ErrAPIURLInvalid
		}
		c.APIURL = u
	}

	if len(f.CORSAllowOrigins) > 0 {
		c.CORSAllowOrigins = f.CORSAllowOrigins
	}

	if f.EnablePprof {
		c.EnablePprof = true
	}

	if f.DataDir != "" {
		c.DataDir = f.DataDir
	}

	if f.CapacityPerDay != "" {
		capacity, err := ParseCapacity(f.CapacityPerDay)
		if err != nil {
			return err
		}
		c.CapacityPerDay = capacity
	}

	return nil
}

// ParseCapacity parses a number of hours per day.
func ParseCapacity(s string) (decimal.Decimal, error) {
	capacity, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !capacity.IsPositive() {
		return decimal.Zero, ErrCapacityInvalid
	}

	return capacity, nil
}
