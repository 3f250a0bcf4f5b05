package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/core/services"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvAPIURL overrides the configured API base URL when set.
const EnvAPIURL = "DOCUQUERY_API_URL"

// DefaultAPIBaseURL points at a local development server.
const DefaultAPIBaseURL = "http://localhost:8000"

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	APIURL                string `toml:"api_url"`
	PollIntervalSeconds   int    `toml:"poll_interval_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DefaultModel          string `toml:"default_model"`
	InboxDir              string `toml:"inbox_dir"`
}

// ConfigStore is a TOML file-based implementation of
// driven.ConfigStore. Configuration is stored in the docuquery config
// directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     fileConfig
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.docuquery/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docuquery")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Settings returns the resolved configuration with defaults and
// environment overrides applied.
func (s *ConfigStore) Settings() driven.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := driven.Settings{
		APIBaseURL:     DefaultAPIBaseURL,
		PollInterval:   services.DefaultPollInterval,
		RequestTimeout: 60 * time.Second,
		DefaultModel:   domain.ModelGPT4o,
		InboxDir:       s.data.InboxDir,
	}

	if s.data.APIURL != "" {
		settings.APIBaseURL = s.data.APIURL
	}
	if env := os.Getenv(EnvAPIURL); env != "" {
		settings.APIBaseURL = env
	}
	if s.data.PollIntervalSeconds > 0 {
		settings.PollInterval = time.Duration(s.data.PollIntervalSeconds) * time.Second
	}
	if s.data.RequestTimeoutSeconds > 0 {
		settings.RequestTimeout = time.Duration(s.data.RequestTimeoutSeconds) * time.Second
	}
	if m := domain.AnswerModel(s.data.DefaultModel); m.Valid() {
		settings.DefaultModel = m
	}

	return settings
}

// SetDefaultModel persists a new default answer model.
func (s *ConfigStore) SetDefaultModel(m domain.AnswerModel) error {
	if !m.Valid() {
		return fmt.Errorf("%q: %w", m, domain.ErrUnknownModel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.DefaultModel = string(m)
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// load reads configuration from the TOML file.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start with defaults
			return nil
		}
		return err
	}

	return toml.Unmarshal(data, &s.data)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
