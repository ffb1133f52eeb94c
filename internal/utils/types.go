package utils

import "time"

type Config struct {
	MaxRetries        int
	Timeout           time.Duration
	MinFileSize       int64 // 0 means unbounded
	MaxFileSize       int64 // 0 means unbounded
	AllowedExtensions []string
	VerifySSL         bool
	UserAgent         string
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:        3,
		Timeout:           30 * time.Second,
		AllowedExtensions: DefaultExtensions,
		VerifySSL:         true,
		UserAgent:         DefaultUserAgent,
	}
}

func (c Config) Validate() error {
	if c.MaxRetries < 1 {
		return &ValidationError{Field: "max-retries", Message: "must be at least 1"}
	}
	if len(c.AllowedExtensions) == 0 {
		return &ValidationError{Field: "extensions", Message: "at least one extension required"}
	}
	if c.MinFileSize > 0 && c.MaxFileSize > 0 && c.MinFileSize > c.MaxFileSize {
		return &ValidationError{Field: "min-size", Message: "must not exceed max-size"}
	}
	return nil
}

type PageEntry struct {
	URL       string `yaml:"link"`
	OutputDir string `yaml:"dir"`
}
