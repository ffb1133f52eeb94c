package utils

import (
	"fmt"
	u "net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9_\-\. ]+`)

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

// SanitizeFilename cleans a name so it is safe to create inside the output
// directory: path separators and other unsafe runes become underscores, and
// names that reduce to nothing fall back to FallbackFilename.
func SanitizeFilename(name string) string {
	if unescaped, err := u.PathUnescape(name); err == nil {
		name = unescaped
	}
	// Keep only the last path segment, whichever separator style
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = filenameRegex.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if name == "" || name == "_" {
		return FallbackFilename
	}
	return name
}

// FilenameFromURL derives a sanitized filename from the path segment of a URL.
func FilenameFromURL(rawURL string) string {
	parsed, err := u.Parse(rawURL)
	if err != nil {
		return FallbackFilename
	}
	return SanitizeFilename(path.Base(parsed.Path))
}

// IsAllowedFile reports whether the URL path (query ignored) carries one of
// the allowed extensions, case-insensitively.
func IsAllowedFile(href string, allowedExtensions []string) bool {
	parsed, err := u.Parse(href)
	if err != nil {
		return false
	}
	lowerPath := strings.ToLower(parsed.Path)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(lowerPath, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ParseExtensions splits a comma-separated extension list, trimming spaces
// and ensuring each entry carries a leading dot.
func ParseExtensions(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// includes logger
func ReadPageList(filePath string) ([]PageEntry, error) {
	log := GetLogger("config")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading YAML file: %v", err)
	}
	var entries []PageEntry
	err = yaml.Unmarshal(data, &entries)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML file: %v", err)
	}
	for i, entry := range entries {
		if entry.URL == "" {
			return nil, fmt.Errorf("missing URL for entry %d", i+1)
		}
	}
	log.Debug().Int("count", len(entries)).Msg("Entries loaded from YAML")
	return entries, nil
}
