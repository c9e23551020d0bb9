package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/viper"

	apperrors "github.com/aigh/aigh/internal/pkg/errors"
)

const (
	// DefaultConfigDirName is the per-user directory holding aigh state.
	DefaultConfigDirName = ".aigh"
	// DefaultConfigFileName is the settings file name.
	DefaultConfigFileName = "config.json"
	// DefaultConfigFileExt is the settings file format.
	DefaultConfigFileExt = "json"
	// ConfigPathEnvVar overrides the settings file location.
	ConfigPathEnvVar = "AIGH_CONFIG"
)

// ViperManager implements the Manager interface using Viper.
// Only the settings file is loaded into viper; environment fallbacks are
// resolved by Settings.APIKey so they never reach the persisted layer.
// Viper folds key case and splits dotted keys, so writes go through raw,
// the file's own top-level object, to keep keys outside the allow-list intact.
type ViperManager struct {
	v          *viper.Viper
	raw        map[string]interface{}
	configPath string
	loaded     bool
}

// DefaultDir returns ~/.aigh.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDirName), nil
}

// DefaultConfigPath returns the settings file path, honoring AIGH_CONFIG.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// NewManager creates a new settings manager.
// If configPath is empty, it uses the default path (~/.aigh/config.json).
func NewManager(configPath string) (*ViperManager, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	return &ViperManager{
		v:          newViper(configPath),
		configPath: configPath,
	}, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(DefaultConfigFileExt)
	v.SetConfigFile(configPath)
	return v
}

// GetConfigPath returns the path to the settings file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// ConfigExists checks if the settings file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// read loads the settings file once. A missing or empty file means no settings;
// an unreadable or malformed one is reported as a warning and treated the same way.
func (m *ViperManager) read() {
	if m.loaded {
		return
	}
	m.loaded = true
	m.raw = map[string]interface{}{}

	data, err := os.ReadFile(m.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		apperrors.Warn("Could not read settings file %s, using defaults: %v", m.configPath, err)
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		apperrors.Warn("Settings file %s is not valid JSON, using defaults: %v", m.configPath, err)
		return
	}
	if raw == nil {
		return
	}
	if err := m.v.ReadConfig(bytes.NewReader(data)); err != nil {
		apperrors.Warn("Settings file %s is not valid JSON, using defaults: %v", m.configPath, err)
		m.v = newViper(m.configPath)
		return
	}
	m.raw = raw
}

// Load decodes the settings file into Settings. It never fails on a malformed file.
func (m *ViperManager) Load() (*Settings, error) {
	m.read()

	var s Settings
	if err := m.v.Unmarshal(&s); err != nil {
		apperrors.Warn("Settings file %s has unexpected values, using defaults: %v", m.configPath, err)
		return &Settings{}, nil
	}
	s.AIProvider = strings.ToLower(strings.TrimSpace(s.AIProvider))

	return &s, nil
}

// Get retrieves a stored value by key. Unset keys return an empty string.
func (m *ViperManager) Get(key string) (string, error) {
	if !IsValidKey(key) {
		return "", apperrors.NewInvalidConfigKeyError(key, ValidKeys)
	}
	m.read()

	value := m.v.Get(key)
	if value == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", value), nil
}

// Set validates and persists a single key.
func (m *ViperManager) Set(key string, value string) error {
	return m.SetValues(map[string]string{key: value})
}

// SetValues validates every pair, then rewrites the settings file once.
// Keys already in the file but outside the allow-list are written back unchanged.
func (m *ViperManager) SetValues(values map[string]string) error {
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		v, err := validate(key, value)
		if err != nil {
			return err
		}
		normalized[key] = v
	}

	m.read()
	for key, value := range normalized {
		m.v.Set(key, value)
		m.raw[key] = value
	}

	return m.write()
}

func validate(key, value string) (string, error) {
	if !IsValidKey(key) {
		return "", apperrors.NewInvalidConfigKeyError(key, ValidKeys)
	}
	value = strings.TrimSpace(value)
	if key == KeyProvider {
		value = strings.ToLower(value)
		if !IsValidProvider(value) {
			return "", apperrors.NewInvalidConfigValueError(key, value,
				fmt.Sprintf("Use one of: %s", strings.Join(Providers, ", ")))
		}
	}
	return value, nil
}

// write persists the file layer with 0600 permissions.
func (m *ViperManager) write() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return apperrors.NewConfigWriteError(m.configPath, err)
	}

	data, err := json.MarshalIndent(m.raw, "", "  ")
	if err != nil {
		return apperrors.NewConfigWriteError(m.configPath, err)
	}
	if err := os.WriteFile(m.configPath, append(data, '\n'), 0600); err != nil {
		return apperrors.NewConfigWriteError(m.configPath, err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return apperrors.NewConfigWriteError(m.configPath, err)
	}

	return nil
}

// List returns a copy of the file layer with its keys as written.
func (m *ViperManager) List() map[string]interface{} {
	m.read()
	settings := make(map[string]interface{}, len(m.raw))
	for k, v := range m.raw {
		settings[k] = v
	}
	return settings
}

// SortedKeys returns the keys of a List result in display order:
// allow-listed keys first, then any extra keys alphabetically.
func SortedKeys(settings map[string]interface{}) []string {
	keys := append([]string(nil), ValidKeys...)
	var extra []string
	for k := range settings {
		if !IsValidKey(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
