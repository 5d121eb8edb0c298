package tdjson

import (
	"errors"
	"fmt"

	"github.com/tdjson-go/tdjson/internal/bindings"
)

var errLogPath = errors.New("tdjson: TDLib rejected the log file path")

// SetLogFilePath redirects TDLib's internal log to path. An empty path
// restores the default of logging to stderr.
func SetLogFilePath(path string) error {
	if !bindings.Available() {
		return ErrNotBuilt
	}
	if err := checkRequest("set_log_file_path", path); err != nil {
		return err
	}
	if bindings.SetLogFilePath(path) == 0 {
		return opError("set_log_file_path", errLogPath, fmt.Errorf("path %q", path))
	}
	return nil
}

// SetLogVerbosityLevel sets TDLib's internal log verbosity: 0 fatal errors,
// 1 errors, 2 warnings, 3 info, 4 debug, 5 verbose debug. Larger values are
// accepted and log even more.
func SetLogVerbosityLevel(level int) error {
	if !bindings.Available() {
		return ErrNotBuilt
	}
	if level < 0 {
		return fmt.Errorf("tdjson: negative log verbosity %d", level)
	}
	bindings.SetLogVerbosityLevel(level)
	return nil
}

// SetLogMaxFileSize sets the size in bytes after which TDLib rotates its log
// file. Values below 1 are rejected.
func SetLogMaxFileSize(size int64) error {
	if !bindings.Available() {
		return ErrNotBuilt
	}
	if size < 1 {
		return fmt.Errorf("tdjson: invalid log file size %d", size)
	}
	bindings.SetLogMaxFileSize(size)
	return nil
}
