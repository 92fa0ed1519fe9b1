// Package config loads the optional JSONC settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tailscale/hujson"

	"movie-catalog-cli/store"
)

// FileName is the settings file looked up in the user config directory.
const FileName = "config.json"

const DefaultSearchDebounce = 400 * time.Millisecond

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Duration accepts either a Go duration string ("400ms") or a number of
// milliseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := time.ParseDuration(strings.TrimSpace(text))
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var millis int64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %s", data)
	}
	*d = Duration(time.Duration(millis) * time.Millisecond)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds all configuration options.
type Config struct {
	SearchDebounce Duration `json:"search_debounce" validate:"gte=0,lte=5000000000"`
	LogLevel       string   `json:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string   `json:"log_file,omitempty"`
}

// Debounce returns SearchDebounce as a time.Duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.SearchDebounce)
}

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	LogLevel string
	LogFile  string
}

func Default() Config {
	return Config{
		SearchDebounce: Duration(DefaultSearchDebounce),
		LogLevel:       "info",
	}
}

// Load applies, in order: defaults, the config file, then overrides.
// An explicit path must exist; the default location is optional. The
// returned string is the file actually read, or empty.
func Load(explicitPath string, overrides Overrides) (Config, string, error) {
	cfg := Default()

	path := strings.TrimSpace(explicitPath)
	mustExist := path != ""
	if !mustExist {
		defaultPath, err := store.ConfigPath(FileName)
		if err != nil {
			return Config{}, "", err
		}
		path = defaultPath
	}

	fileCfg, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}
	if loaded {
		cfg = merge(cfg, fileCfg)
	} else {
		path = ""
	}

	if overrides.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(overrides.LogLevel)
	}
	if overrides.LogFile != "" {
		cfg.LogFile = overrides.LogFile
	}

	if err := Validate(cfg); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Validate checks the field constraints declared on Config.
func Validate(cfg Config) error {
	if err := validatorInstance().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, true, nil
}

// fileConfig mirrors Config with pointers so unset keys can be told apart
// from explicit zero values.
type fileConfig struct {
	SearchDebounce *Duration `json:"search_debounce"`
	LogLevel       *string   `json:"log_level"`
	LogFile        *string   `json:"log_file"`
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.SearchDebounce != nil {
		base.SearchDebounce = *overlay.SearchDebounce
	}
	if overlay.LogLevel != nil {
		base.LogLevel = strings.ToLower(*overlay.LogLevel)
	}
	if overlay.LogFile != nil {
		base.LogFile = *overlay.LogFile
	}
	return base
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}
