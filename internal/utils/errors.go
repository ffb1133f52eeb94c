package utils

import (
	"errors"
	"fmt"
)

// ErrDownloadFailed is the base marker for all error kinds in this package;
// errors.Is(err, ErrDownloadFailed) matches any of them.
var ErrDownloadFailed = errors.New("download failed")

// DownloadError wraps a fatal page-level failure with its source URL.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

func (e *DownloadError) Is(target error) bool {
	return target == ErrDownloadFailed
}

// NetworkError is returned when a request exhausts its retry budget.
type NetworkError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrDownloadFailed
}

// FileSystemError is returned when a directory or file operation fails.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("filesystem error on %s: %v", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

func (e *FileSystemError) Is(target error) bool {
	return target == ErrDownloadFailed
}

// InvalidURLError is returned for malformed target URLs.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

func (e *InvalidURLError) Is(target error) bool {
	return target == ErrDownloadFailed
}

// ValidationError is returned for configuration values that fail validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrDownloadFailed
}
