package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// I18nStrings holds all localized strings
type I18nStrings map[string]string

//go:embed i18n/*.json
var bundled embed.FS

var (
	i18nStrings I18nStrings
	i18nMu      sync.RWMutex
)

// InitI18n loads the strings for lang. The bundled English strings are the
// base; a file at dir/<lang>.json overrides individual keys.
func InitI18n(dir, lang string) {
	strings, err := loadI18n(dir, lang)
	if err != nil {
		slog.Warn("could not load i18n config", "error", err)
	}
	i18nMu.Lock()
	i18nStrings = strings
	i18nMu.Unlock()
}

func loadI18n(dir, lang string) (I18nStrings, error) {
	strings := make(I18nStrings)
	if err := mergeI18n(strings, func() ([]byte, error) { return bundled.ReadFile("i18n/en.json") }); err != nil {
		return strings, fmt.Errorf("bundled strings: %w", err)
	}
	if lang != "en" {
		if err := mergeI18n(strings, func() ([]byte, error) { return bundled.ReadFile("i18n/" + lang + ".json") }); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return strings, err
		}
	}
	if dir == "" {
		return strings, nil
	}

	path := filepath.Join(dir, lang+".json")
	err := mergeI18n(strings, func() ([]byte, error) { return os.ReadFile(path) })
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return strings, fmt.Errorf("%s: %w", path, err)
	}
	if err == nil {
		slog.Info("loaded i18n overrides", "path", path)
	}
	return strings, nil
}

func mergeI18n(into I18nStrings, read func() ([]byte, error)) error {
	data, err := read()
	if err != nil {
		return err
	}
	var strings I18nStrings
	if err := json.Unmarshal(data, &strings); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	for k, v := range strings {
		into[k] = v
	}
	return nil
}

// I18n looks up a localized string by key.
// Returns the key itself if not found so missing translations stay visible.
func I18n(key string) string {
	i18nMu.RLock()
	defer i18nMu.RUnlock()

	if val, ok := i18nStrings[key]; ok {
		return val
	}
	return key
}
