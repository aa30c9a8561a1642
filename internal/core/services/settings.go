package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusEditable       = "corpus.editable"
	keyCheckMissingSources  = "loader.check_missing_sources"
	keyCreateMissingSources = "loader.create_missing_sources"
	keyDatasetDir           = "loader.dataset_dir"
	keyFetchRetries         = "fetch.retries"
	keyFetchTimeout         = "fetch.timeout"
	keyFetchRate            = "fetch.requests_per_second"
)

type settingKind int

const (
	kindBool settingKind = iota
	kindInt
	kindFloat
	kindDuration
	kindString
)

var settingKinds = map[string]settingKind{
	keyCorpusEditable:       kindBool,
	keyCheckMissingSources:  kindBool,
	keyCreateMissingSources: kindBool,
	keyDatasetDir:           kindString,
	keyFetchRetries:         kindInt,
	keyFetchTimeout:         kindDuration,
	keyFetchRate:            kindFloat,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.Settings{
		Corpus: domain.CorpusSettings{
			Editable:             s.getBool(keyCorpusEditable, defaults.Corpus.Editable),
			CheckMissingSources:  s.getBool(keyCheckMissingSources, defaults.Corpus.CheckMissingSources),
			CreateMissingSources: s.getBool(keyCreateMissingSources, defaults.Corpus.CreateMissingSources),
			DatasetDir:           s.getString(keyDatasetDir, defaults.Corpus.DatasetDir),
		},
		Fetch: domain.FetchSettings{
			Retries:           s.getInt(keyFetchRetries, defaults.Fetch.Retries),
			Timeout:           s.getDuration(keyFetchTimeout, defaults.Fetch.Timeout),
			RequestsPerSecond: s.getFloat(keyFetchRate, defaults.Fetch.RequestsPerSecond),
		},
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrNotFound
	}
	values := map[string]any{
		keyCorpusEditable:       settings.Corpus.Editable,
		keyCheckMissingSources:  settings.Corpus.CheckMissingSources,
		keyCreateMissingSources: settings.Corpus.CreateMissingSources,
		keyDatasetDir:           settings.Corpus.DatasetDir,
		keyFetchRetries:         settings.Fetch.Retries,
		keyFetchTimeout:         settings.Fetch.Timeout.String(),
		keyFetchRate:            settings.Fetch.RequestsPerSecond,
	}
	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value for key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotFound
	}
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		parsed, err = strconv.ParseFloat(value, 64)
	case kindDuration:
		var d time.Duration
		d, err = time.ParseDuration(value)
		parsed = d.String()
	case kindString:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return s.configStore.Set(key, parsed)
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	str := s.configStore.GetString(key)
	if str == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
