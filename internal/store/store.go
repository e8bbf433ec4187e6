package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/teambrain/brainconf/internal/config"
	"github.com/teambrain/brainconf/internal/logging"
	"github.com/teambrain/brainconf/internal/platform"
)

// Store owns one configuration Document and the file it came from. It is
// not safe for concurrent use. Mutations stay in memory until Save.
type Store struct {
	path   string
	doc    Document
	logger *slog.Logger
}

// Option configures Open.
type Option func(*Store)

// WithPath overrides the default file location.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// PathEntry is one entry of the paths section.
type PathEntry struct {
	Name string
	Path string
}

// SettingEntry is one entry of the settings section.
type SettingEntry struct {
	Name  string
	Value Value
}

// Open loads the configuration document. When the file does not exist the
// built-in default is synthesized and written before Open returns.
func Open(opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.path == "" {
		s.path = config.FilePath()
	}
	if abs, err := filepath.Abs(s.path); err == nil {
		s.path = abs
	}
	s.logger = logging.For(s.logger, "store")

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("configuration not found, writing defaults", "path", s.path)
		s.doc = DefaultDocument(s.hqDir())
		return s.Save()
	}
	if err != nil {
		return &LoadError{Path: s.path, Err: err}
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return &LoadError{Path: s.path, Err: err}
	}
	s.doc = doc
	s.logger.Debug("loaded configuration", "path", s.path)
	return nil
}

// hqDir is the root directory for default paths.
func (s *Store) hqDir() string {
	return filepath.Dir(s.path)
}

// Path returns the resolved file location.
func (s *Store) Path() string { return s.path }

// Document returns a deep copy of the in-memory document.
func (s *Store) Document() Document { return s.doc.Clone() }

// Save writes the whole document to disk, replacing the previous file.
func (s *Store) Save() error {
	data, err := s.doc.MarshalIndent()
	if err != nil {
		return &PersistenceError{Path: s.path, Err: fmt.Errorf("encoding document: %w", err)}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Path: s.path, Err: fmt.Errorf("creating directory %s: %w", dir, err)}
	}

	if err := platform.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	s.logger.Debug("saved configuration", "path", s.path, "bytes", len(data))
	return nil
}

// Reset replaces the in-memory document with the built-in default. Like every
// other mutation it is not written until Save.
func (s *Store) Reset() {
	s.doc = DefaultDocument(s.hqDir())
	s.logger.Debug("reset configuration to defaults", "path", s.path)
}

// Get returns a copy of the value at a dotted key such as "agents.ATLAS.model".
// Every segment must exist; unlike Set, Get never creates anything.
func (s *Store) Get(key string) (Value, error) {
	parts, err := splitKey(key)
	if err != nil {
		return Value{}, &KeyNotFoundError{Kind: MissingKey, Key: key}
	}
	v, err := s.doc.lookup(key, parts)
	if err != nil {
		return Value{}, err
	}
	return v.Clone(), nil
}

// Set stores a copy of val at a dotted key. Missing intermediate mappings are
// created; an intermediate that holds a non-mapping value fails with
// NotTraversableError and is left untouched. A val containing NaN or an
// infinity fails with InvalidValueError.
func (s *Store) Set(key string, val Value) error {
	parts, err := splitKey(key)
	if err != nil {
		return &InvalidValueError{Field: key, Reason: err.Error()}
	}
	if err := val.checkEncodable(""); err != nil {
		return &InvalidValueError{Field: key, Reason: err.Error()}
	}
	return s.doc.assign(key, parts, val.Clone())
}

// GetPath returns the raw string stored under paths[name]. The path is not
// checked for existence.
func (s *Store) GetPath(name string) (string, error) {
	paths, ok, err := s.doc.section(SectionPaths, false)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &KeyNotFoundError{Kind: MissingPath, Key: name}
	}
	v, ok := paths.Get(name)
	if !ok {
		return "", &KeyNotFoundError{Kind: MissingPath, Key: name}
	}
	str, ok := v.AsString()
	if !ok {
		return "", &InvalidValueError{
			Field:  SectionPaths + "." + name,
			Reason: fmt.Sprintf("stored value is a %s, not a string", v.Kind()),
		}
	}
	return str, nil
}

// SetPath upserts paths[name] in memory.
func (s *Store) SetPath(name, value string) error {
	if err := checkEntryName(SectionPaths, name); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		return &InvalidValueError{Field: SectionPaths + "." + name, Reason: "path must be a non-empty string"}
	}
	paths, _, err := s.doc.section(SectionPaths, true)
	if err != nil {
		return err
	}
	paths.Set(name, String(value))
	return nil
}

// GetAgent returns the profile stored under agents[name]. Lookup is
// case-sensitive.
func (s *Store) GetAgent(name string) (AgentProfile, error) {
	agents, ok, err := s.doc.section(SectionAgents, false)
	if err != nil {
		return AgentProfile{}, err
	}
	if !ok {
		return AgentProfile{}, &KeyNotFoundError{Kind: MissingAgent, Key: name}
	}
	v, ok := agents.Get(name)
	if !ok {
		return AgentProfile{}, &KeyNotFoundError{Kind: MissingAgent, Key: name}
	}
	m, ok := v.AsMapping()
	if !ok {
		key := SectionAgents + "." + name
		return AgentProfile{}, &NotTraversableError{Key: key, Segment: key, Found: v.Kind()}
	}
	return profileFromMapping(name, m), nil
}

// ListAgents returns every agent profile in document order. Entries that are
// not mappings are skipped; Validate reports them.
func (s *Store) ListAgents() []AgentProfile {
	agents, ok, err := s.doc.section(SectionAgents, false)
	if err != nil || !ok {
		return nil
	}
	var out []AgentProfile
	for pair := agents.Oldest(); pair != nil; pair = pair.Next() {
		m, ok := pair.Value.AsMapping()
		if !ok {
			s.logger.Warn("skipping malformed agent entry", "agent", pair.Key, "kind", pair.Value.Kind().String())
			continue
		}
		out = append(out, profileFromMapping(pair.Key, m))
	}
	return out
}

// AgentNames returns the agent identifiers in document order.
func (s *Store) AgentNames() []string {
	return s.sectionKeys(SectionAgents)
}

// ListPaths returns the paths section in document order. Non-string entries
// are rendered with Value.String.
func (s *Store) ListPaths() []PathEntry {
	paths, ok, err := s.doc.section(SectionPaths, false)
	if err != nil || !ok {
		return nil
	}
	out := make([]PathEntry, 0, paths.Len())
	for pair := paths.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, PathEntry{Name: pair.Key, Path: pair.Value.String()})
	}
	return out
}

// ListSettings returns copies of the settings section in document order.
func (s *Store) ListSettings() []SettingEntry {
	settings, ok, err := s.doc.section(SectionSettings, false)
	if err != nil || !ok {
		return nil
	}
	out := make([]SettingEntry, 0, settings.Len())
	for pair := settings.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, SettingEntry{Name: pair.Key, Value: pair.Value.Clone()})
	}
	return out
}

// GetSetting returns settings[name]. Settings are optional, so a missing key
// reports false instead of an error.
func (s *Store) GetSetting(name string) (Value, bool) {
	settings, ok, err := s.doc.section(SectionSettings, false)
	if err != nil || !ok {
		return Value{}, false
	}
	v, ok := settings.Get(name)
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

// SetSetting upserts settings[name] in memory. Only scalars are accepted, and
// numbers must be finite.
func (s *Store) SetSetting(name string, val Value) error {
	if err := checkEntryName(SectionSettings, name); err != nil {
		return err
	}
	if !val.IsScalar() {
		return &InvalidValueError{
			Field:  SectionSettings + "." + name,
			Reason: fmt.Sprintf("settings hold strings, numbers or booleans, got %s", val.Kind()),
		}
	}
	if err := val.checkEncodable(""); err != nil {
		return &InvalidValueError{Field: SectionSettings + "." + name, Reason: err.Error()}
	}
	settings, _, err := s.doc.section(SectionSettings, true)
	if err != nil {
		return err
	}
	settings.Set(name, val)
	return nil
}

// SettingString returns settings[name] when it is a string, else fallback.
func (s *Store) SettingString(name, fallback string) string {
	if v, ok := s.GetSetting(name); ok {
		if str, ok := v.AsString(); ok {
			return str
		}
	}
	return fallback
}

// SettingFloat64 returns settings[name] when it is a number, else fallback.
func (s *Store) SettingFloat64(name string, fallback float64) float64 {
	if v, ok := s.GetSetting(name); ok {
		if f, ok := v.AsFloat64(); ok {
			return f
		}
	}
	return fallback
}

// SettingInt returns settings[name] when it is an integral number, else fallback.
func (s *Store) SettingInt(name string, fallback int64) int64 {
	if v, ok := s.GetSetting(name); ok {
		if i, ok := v.AsInt(); ok {
			return i
		}
	}
	return fallback
}

// SettingBool returns settings[name] when it is a boolean, else fallback.
func (s *Store) SettingBool(name string, fallback bool) bool {
	if v, ok := s.GetSetting(name); ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return fallback
}

func (s *Store) sectionKeys(name string) []string {
	m, ok, err := s.doc.section(name, false)
	if err != nil || !ok {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// checkEntryName rejects names that a dotted key could not address.
func checkEntryName(section, name string) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidValueError{Field: section, Reason: "name must not be empty"}
	}
	if strings.Contains(name, ".") {
		return &InvalidValueError{Field: section + "." + name, Reason: "name must not contain '.'"}
	}
	return nil
}
