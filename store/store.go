package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"movie-catalog-cli/model"
)

const (
	appDirName          = "movie-catalog-cli"
	preferencesFileName = "preferences.json"
	themeKey            = "theme"
)

// Preferences is the durable key-value slot holding the display mode.
// Unknown keys in the file are preserved across writes.
type Preferences struct {
	path string
}

// NewPreferences returns a store backed by the file at path.
func NewPreferences(path string) *Preferences {
	return &Preferences{path: path}
}

// DefaultPreferences returns the store under the user's config directory.
func DefaultPreferences() (*Preferences, error) {
	path, err := ConfigPath(preferencesFileName)
	if err != nil {
		return nil, err
	}
	return NewPreferences(path), nil
}

// Path returns the backing file location.
func (p *Preferences) Path() string {
	return p.path
}

// ReadMode returns the persisted mode. ok is false when nothing has been
// stored yet; callers then fall back to model.ThemeLight.
func (p *Preferences) ReadMode() (model.ThemeMode, bool, error) {
	values, err := p.load()
	if err != nil {
		return model.ThemeLight, false, err
	}
	raw, ok := values[themeKey]
	if !ok {
		return model.ThemeLight, false, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return model.ThemeLight, true, nil
	}
	return model.ParseThemeMode(value), true, nil
}

// WriteMode persists mode, replacing any previous value.
func (p *Preferences) WriteMode(mode model.ThemeMode) error {
	values, err := p.load()
	if err != nil {
		values = map[string]json.RawMessage{}
	}
	encoded, err := json.Marshal(mode.String())
	if err != nil {
		return err
	}
	values[themeKey] = encoded
	return p.save(values)
}

func (p *Preferences) load() (map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	if p == nil || p.path == "" {
		return values, errors.New("preferences path is required")
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return values, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]json.RawMessage{}, fmt.Errorf("invalid preferences format: %w", err)
	}
	return values, nil
}

func (p *Preferences) save(values map[string]json.RawMessage) error {
	if p == nil || p.path == "" {
		return errors.New("preferences path is required")
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(p.path, bytes.NewReader(append(payload, '\n'))); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// ConfigPath resolves name inside the application's config directory.
func ConfigPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
