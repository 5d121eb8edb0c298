package tdjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the file form of client options and TDLib's internal log
// settings. Files may be YAML, JSON or JSON with comments.
//
//	poll_timeout: 2s
//	native_log:
//	  verbosity: 1
//	  file_path: tdlib.log
//	  max_file_size: 10485760
type Config struct {
	PollTimeout time.Duration   `yaml:"poll_timeout"`
	NativeLog   NativeLogConfig `yaml:"native_log"`
}

// NativeLogConfig controls TDLib's own log. A nil Verbosity leaves TDLib's
// default untouched.
type NativeLogConfig struct {
	Verbosity   *int   `yaml:"verbosity"`
	FilePath    string `yaml:"file_path"`
	MaxFileSize int64  `yaml:"max_file_size"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{PollTimeout: DefaultTimeout}
}

// LoadConfig reads a configuration file. Files ending in .json or .jsonc
// are read as JSON with comments allowed; anything else as YAML. Fields the
// file leaves out keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig parses configuration data. ext selects the format as in
// LoadConfig.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		// Compact JSON is valid YAML once comments and trailing commas are
		// gone.
		var buf bytes.Buffer
		if err := json.Compact(&buf, jsonc.ToJSON(data)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		data = buf.Bytes()
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.PollTimeout < 0 {
		errs = append(errs, fmt.Errorf("poll_timeout must not be negative, got %s", c.PollTimeout))
	}
	if v := c.NativeLog.Verbosity; v != nil && *v < 0 {
		errs = append(errs, fmt.Errorf("native_log.verbosity must not be negative, got %d", *v))
	}
	if c.NativeLog.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("native_log.max_file_size must not be negative, got %d", c.NativeLog.MaxFileSize))
	}
	if strings.IndexByte(c.NativeLog.FilePath, 0) >= 0 {
		errs = append(errs, errors.New("native_log.file_path contains a NUL byte"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Options returns the client options the configuration describes.
func (c Config) Options() []Option {
	return []Option{WithTimeout(c.PollTimeout)}
}

// ApplyNativeLog pushes the native_log settings to TDLib. Unset fields are
// skipped. It returns ErrNotBuilt if any setting is present and libtdjson
// is not linked.
func (c Config) ApplyNativeLog() error {
	l := c.NativeLog
	if l.Verbosity != nil {
		if err := SetLogVerbosityLevel(*l.Verbosity); err != nil {
			return err
		}
	}
	if l.FilePath != "" {
		if err := SetLogFilePath(l.FilePath); err != nil {
			return err
		}
	}
	if l.MaxFileSize > 0 {
		if err := SetLogMaxFileSize(l.MaxFileSize); err != nil {
			return err
		}
	}
	return nil
}
