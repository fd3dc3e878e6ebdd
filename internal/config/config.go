// Package config handles loading and parsing of inlinecomplete configuration files.
package config

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

//go:embed default.yml
var defaultYAML []byte

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".inlinecomplete.yml",
	".inlinecomplete.yaml",
	".inlinecomplete.toml",
	".inlinecomplete.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"

	// SourcePrefix filters suggestion lists in order
	SourcePrefix = "prefix"
	// SourceTrie indexes suggestion lists in a prefix trie
	SourceTrie = "trie"
)

// TriggerConfig represents one trigger entry
type TriggerConfig struct {
	Char      string `koanf:"char"`
	MultiWord bool   `koanf:"multi_word"`
}

// SurfaceConfig describes the text box the demo and match commands lay text out in
type SurfaceConfig struct {
	Width     int  `koanf:"width"`
	Multiline bool `koanf:"multiline"`
	WordBreak bool `koanf:"word_break"`
	Autosize  bool `koanf:"autosize"`
}

// Config represents an inlinecomplete configuration
type Config struct {
	LogLevel       string                   `koanf:"log_level"`
	MaxSuggestions int                      `koanf:"max_suggestions"`
	Source         string                   `koanf:"source"`
	Triggers       []TriggerConfig          `koanf:"triggers"`
	Suggestions    map[string][]interface{} `koanf:"suggestions"` // Items can be string or {value, key}
	Surface        SurfaceConfig            `koanf:"surface"`
}

// newConfig returns the values used for keys a file leaves out
func newConfig() *Config {
	return &Config{
		LogLevel:       "warn",
		MaxSuggestions: 8,
		Source:         SourcePrefix,
		Suggestions:    make(map[string][]interface{}),
		Surface: SurfaceConfig{
			Width:     60,
			Multiline: true,
		},
	}
}

// GetTriggers returns the configured triggers in order
func (c *Config) GetTriggers() ([]trigger.Trigger, error) {
	triggers := make([]trigger.Trigger, 0, len(c.Triggers))

	for i, t := range c.Triggers {
		if utf8.RuneCountInString(t.Char) != 1 {
			return nil, derrors.NewValidationError(
				fmt.Sprintf("triggers/%d", i),
				fmt.Sprintf("trigger char must be exactly one character, got %q", t.Char),
				nil,
			)
		}
		r, _ := utf8.DecodeRuneInString(t.Char)
		triggers = append(triggers, trigger.Trigger{Char: r, MultiWord: t.MultiWord})
	}

	return triggers, nil
}

// GetSuggestions returns a normalized map of trigger character to suggestions
func (c *Config) GetSuggestions() (map[rune][]suggestion.Suggestion, error) {
	result := make(map[rune][]suggestion.Suggestion)

	for char, items := range c.Suggestions {
		if utf8.RuneCountInString(char) != 1 {
			return nil, derrors.NewValidationError(
				"suggestions/"+char,
				fmt.Sprintf("suggestion key must be exactly one character, got %q", char),
				nil,
			)
		}
		r, _ := utf8.DecodeRuneInString(char)

		list := make([]suggestion.Suggestion, 0, len(items))
		for i, item := range items {
			s, err := suggestion.FromAny(item)
			if err != nil {
				return nil, derrors.NewValidationError(fmt.Sprintf("suggestions/%s/%d", char, i), "invalid suggestion", err)
			}
			list = append(list, s)
		}
		result[r] = list
	}

	return result, nil
}

// SuggestionChars returns the suggestion keys in a stable order
func (c *Config) SuggestionChars() []string {
	chars := make([]string, 0, len(c.Suggestions))
	for char := range c.Suggestions {
		chars = append(chars, char)
	}
	sort.Strings(chars)
	return chars
}

// TextBox returns a text box laid out as configured
func (s SurfaceConfig) TextBox(value string) *geometry.TextBox {
	return &geometry.TextBox{
		Value:     value,
		Width:     s.Width,
		Multi:     s.Multiline,
		WordBreak: s.WordBreak,
		Autosize:  s.Autosize,
	}
}

// cachedConfig stores a parsed config with its modification time and hash
type cachedConfig struct {
	config  *Config
	modTime time.Time
	size    int64
	hash    string
}

// Loader handles loading and parsing configuration files
type Loader struct {
	// Cache for parsed configs with modtime validation
	parsedCache map[string]*cachedConfig
}

// New creates a new config loader
func New() *Loader {
	return &Loader{
		parsedCache: make(map[string]*cachedConfig),
	}
}

// parserFor returns the koanf parser for a format name or file extension
func parserFor(format string) (koanf.Parser, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yml", "yaml":
		return yaml.Parser(), nil
	case "toml":
		return toml.Parser(), nil
	case "json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}

// Load reads and parses a configuration file. Missing keys keep their
// default values.
func (l *Loader) Load(path string) (*Config, error) {
	// Check if we have a cached version
	if cached, exists := l.parsedCache[path]; exists && cached.config != nil {
		fileInfo, err := os.Stat(path)
		if err == nil && !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
			return cached.config, nil
		}
		// File was modified, invalidate cache
		delete(l.parsedCache, path)
	}

	parser, err := parserFor(filepath.Ext(path))
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "cannot load config", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	// Cache the parsed config with its modtime, size and hash
	if fileInfo, err := os.Stat(path); err == nil {
		hashStr, _ := hashFile(path)
		l.parsedCache[path] = &cachedConfig{
			config:  cfg,
			modTime: fileInfo.ModTime(),
			size:    fileInfo.Size(),
			hash:    hashStr,
		}
	}

	return cfg, nil
}

// Invalidate drops the cached parse of path
func (l *Loader) Invalidate(path string) {
	delete(l.parsedCache, path)
}

// Hash computes SHA-256 hash of a config file
func (l *Loader) Hash(path string) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if cached, exists := l.parsedCache[path]; exists {
		if !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size && cached.hash != "" {
			return cached.hash, nil
		}
	}

	return hashFile(path)
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// LoadBytes parses a configuration held in memory. format is a file
// extension or format name such as "yaml".
func LoadBytes(data []byte, format string) (*Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return unmarshal(k)
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := LoadBytes(defaultYAML, "yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// DefaultYAML returns the embedded default configuration file
func DefaultYAML() []byte {
	return defaultYAML
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := newConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "inlinecomplete", GlobalConfigName), nil
}

// FindConfigFile searches for a config file from startDir up to root and
// returns the nearest one, or "" when there is none
func FindConfigFile(startDir string) string {
	currentDir := startDir

	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return ""
		}
		currentDir = parent
	}
}

// Resolve picks the config file to use: explicit when set, then the nearest
// local config above dir, then the global config. It returns "" when none
// exists, meaning the defaults apply.
func Resolve(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", derrors.NewNotFoundError(explicit, fmt.Sprintf("config file not found: %s", explicit))
		}
		return explicit, nil
	}

	if local := FindConfigFile(dir); local != "" {
		return local, nil
	}

	globalPath, err := GetGlobalConfigPath()
	if err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			return globalPath, nil
		}
	}

	return "", nil
}

// LoadResolved loads the config Resolve picks, falling back to the defaults
func (l *Loader) LoadResolved(explicit, dir string) (*Config, string, error) {
	path, err := Resolve(explicit, dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := l.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
