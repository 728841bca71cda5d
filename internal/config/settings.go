package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frippertronics/record-roll/internal/model"
	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	// DefaultPath is the config file looked up when none is given.
	DefaultPath = "config.ini"

	// ExamplePath is the template users copy DefaultPath from.
	ExamplePath = "config.example.ini"

	defaultAPIBaseURL = "https://api.discogs.com/releases"
	defaultCoverDir   = "~/Pictures/record-roll"
	defaultCoverName  = "{artist} - {album}"
	defaultLogFile    = "~/.local/state/record-roll/record-roll.log"

	envCSVFile = "RECORD_ROLL_CSV_FILE"
	envToken   = "DISCOGS_TOKEN"
)

// ErrConfigNotFound is returned by Load when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// MissingKeyError reports a required key absent from the config file.
type MissingKeyError struct {
	Key  string
	What string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("please specify %s with the '%s' key (see %s)", e.What, e.Key, ExamplePath)
}

// Settings holds all configuration options.
type Settings struct {
	// Required
	CSVFile string `ini:"csv_file" toml:"csv_file"`
	Token   string `ini:"token" toml:"token"`

	// Catalog settings
	HasHeader    bool `ini:"has_header" toml:"has_header"`
	WatchCatalog bool `ini:"watch_catalog" toml:"watch_catalog"`

	// Remote API settings
	APIBaseURL     string  `ini:"api_base_url" toml:"api_base_url"`
	RequestTimeout float64 `ini:"request_timeout" toml:"request_timeout"` // seconds
	MaxRerolls     int     `ini:"max_rerolls" toml:"max_rerolls"`         // picks after the first failed one

	// Cover export settings
	CoverDir            string `ini:"cover_dir" toml:"cover_dir"`
	CoverFileNameFormat string `ini:"cover_file_name_format" toml:"cover_file_name_format"`

	// Logging
	LogFile  string `ini:"log_file" toml:"log_file"`
	LogLevel string `ini:"log_level" toml:"log_level"`
}

// DefaultSettings returns settings with default values and no required keys set.
func DefaultSettings() *Settings {
	return &Settings{
		HasHeader:           true,
		WatchCatalog:        true,
		APIBaseURL:          defaultAPIBaseURL,
		RequestTimeout:      30,
		MaxRerolls:          10,
		CoverDir:            defaultCoverDir,
		CoverFileNameFormat: defaultCoverName,
		LogFile:             defaultLogFile,
		LogLevel:            "info",
	}
}

// Load reads settings from an INI or TOML file, chosen by extension.
//
// Missing optional keys keep their defaults. A .env file in the working
// directory is loaded first; RECORD_ROLL_CSV_FILE and DISCOGS_TOKEN then
// override the file. Both required keys must be present afterwards.
func Load(path string) (*Settings, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (create it from %s or run `record-roll init`)", ErrConfigNotFound, path, ExamplePath)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := DefaultSettings()
	if err := decode(path, data, settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Real environment variables always win over .env.
	_ = godotenv.Load()
	if v, ok := os.LookupEnv(envCSVFile); ok && strings.TrimSpace(v) != "" {
		settings.CSVFile = v
	}
	if v, ok := os.LookupEnv(envToken); ok && strings.TrimSpace(v) != "" {
		settings.Token = v
	}

	if err := settings.normalize(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a file, creating parent directories as needed.
// The format follows the extension like Load.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if isTOML(path) {
		data, err := toml.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		return os.WriteFile(path, data, 0o600)
	}

	file := ini.Empty()
	if err := file.Section("").ReflectFrom(s); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// ToCoverConfig converts settings to CoverConfig.
func (s *Settings) ToCoverConfig() *model.CoverConfig {
	return &model.CoverConfig{
		Dir:            s.CoverDir,
		FileNameFormat: s.CoverFileNameFormat,
	}
}

func decode(path string, data []byte, dst *Settings) error {
	if isTOML(path) {
		return toml.Unmarshal(data, dst)
	}
	file, err := ini.Load(data)
	if err != nil {
		return err
	}
	return file.Section("").MapTo(dst)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (s *Settings) normalize() error {
	s.CSVFile = strings.TrimSpace(s.CSVFile)
	s.Token = strings.TrimSpace(s.Token)
	if s.CSVFile == "" {
		return &MissingKeyError{Key: "csv_file", What: "a CSV file path"}
	}
	if s.Token == "" {
		return &MissingKeyError{Key: "token", What: "a Discogs user token"}
	}

	s.CSVFile = mustExpand(s.CSVFile)
	s.CoverDir = mustExpand(fallback(s.CoverDir, defaultCoverDir))
	s.LogFile = mustExpand(fallback(s.LogFile, defaultLogFile))
	s.CoverFileNameFormat = fallback(s.CoverFileNameFormat, defaultCoverName)
	s.APIBaseURL = strings.TrimRight(fallback(s.APIBaseURL, defaultAPIBaseURL), "/")
	s.LogLevel = strings.ToLower(fallback(s.LogLevel, "info"))

	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 30
	}
	if s.MaxRerolls < 1 {
		s.MaxRerolls = 1
	}
	return nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
