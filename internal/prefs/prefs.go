// Package prefs persists update preferences in the launcher data directory.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// FileName is the preferences file inside the data directory.
const FileName = "lodestone_update.toml"

// DefaultUpdateInterval applies when update_interval is absent or unparsable.
const DefaultUpdateInterval = 86400 * time.Second

// Keys in the preferences file.
const (
	keyAllowBeta      = "allow_beta"
	keyAutoCheck      = "auto_check"
	keyUpdateInterval = "update_interval"
	keyLastCheck      = "last_check"
	keySkip           = "skip"
)

// Store is the durable key/value store of update preferences. Every setter
// persists synchronously; there is no batching and no cache to invalidate.
// It is single-writer: the launcher process owns the file.
type Store struct {
	v    *viper.Viper
	path string
}

// Load reads the preferences file from dataDir, creating the directory if
// needed. A missing file is not an error; defaults apply until the first
// setter call creates it.
func Load(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault(keyAllowBeta, false)
	v.SetDefault(keyAutoCheck, false)
	v.SetDefault(keyUpdateInterval, int(DefaultUpdateInterval/time.Second))
	v.SetDefault(keySkip, []string{})

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	return &Store{v: v, path: path}, nil
}

// Path returns the preferences file location.
func (s *Store) Path() string {
	return s.path
}

// AllowBeta reports whether pre-release versions may be offered.
func (s *Store) AllowBeta() bool {
	return s.v.GetBool(keyAllowBeta)
}

// SetAllowBeta persists the pre-release preference.
func (s *Store) SetAllowBeta(allowed bool) error {
	s.v.Set(keyAllowBeta, allowed)
	return s.persist()
}

// AutoCheck reports whether automatic update checks are enabled.
func (s *Store) AutoCheck() bool {
	return s.v.GetBool(keyAutoCheck)
}

// SetAutoCheck persists the automatic-check preference.
func (s *Store) SetAutoCheck(enabled bool) error {
	s.v.Set(keyAutoCheck, enabled)
	return s.persist()
}

// UpdateInterval returns the configured check interval. Absent, zero or
// unparsable values fall back to DefaultUpdateInterval.
func (s *Store) UpdateInterval() time.Duration {
	secs := s.v.GetInt(keyUpdateInterval)
	if secs <= 0 {
		return DefaultUpdateInterval
	}
	return time.Duration(secs) * time.Second
}

// SetUpdateInterval persists the check interval, stored as whole seconds.
func (s *Store) SetUpdateInterval(interval time.Duration) error {
	s.v.Set(keyUpdateInterval, int(interval/time.Second))
	return s.persist()
}

// LastCheck returns the time of the last completed update check, if any.
func (s *Store) LastCheck() (time.Time, bool) {
	raw := s.v.GetString(keyLastCheck)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetLastCheck records when a check last ran.
func (s *Store) SetLastCheck(t time.Time) error {
	s.v.Set(keyLastCheck, t.Format(time.RFC3339))
	return s.persist()
}

// IsSkipped reports whether the operator chose to skip this version.
func (s *Store) IsSkipped(versionTag string) bool {
	return slices.Contains(s.v.GetStringSlice(keySkip), versionTag)
}

// SkipVersion marks a version so it is never offered again. Entries never
// expire; UnskipVersion is the only way back.
func (s *Store) SkipVersion(versionTag string) error {
	skipped := s.v.GetStringSlice(keySkip)
	if slices.Contains(skipped, versionTag) {
		return nil
	}
	s.v.Set(keySkip, append(skipped, versionTag))
	return s.persist()
}

// UnskipVersion removes a version from the skip list.
func (s *Store) UnskipVersion(versionTag string) error {
	skipped := s.v.GetStringSlice(keySkip)
	remaining := slices.DeleteFunc(slices.Clone(skipped), func(tag string) bool {
		return tag == versionTag
	})
	if len(remaining) == len(skipped) {
		return nil
	}
	s.v.Set(keySkip, remaining)
	return s.persist()
}

// SkippedVersions returns the skip list for display.
func (s *Store) SkippedVersions() []string {
	return s.v.GetStringSlice(keySkip)
}

func (s *Store) persist() error {
	if err := s.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
