package blobstore

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultContentType is assumed for uploads that do not declare one
const DefaultContentType = "audio/webm"

const keyPrefix = "recordings/"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

var extensionsByType = map[string]string{
	"audio/webm":  "webm",
	"video/webm":  "webm",
	"audio/mp4":   "m4a",
	"video/mp4":   "mp4",
	"audio/m4a":   "m4a",
	"audio/x-m4a": "m4a",
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
	"audio/wave":  "wav",
	"audio/ogg":   "ogg",
	"audio/aac":   "aac",
}

// ObjectKey builds recordings/<epoch-ms>-<name>.<ext> for an upload.
// The name keeps only [A-Za-z0-9_-]; the extension comes from the filename,
// then the content type, then defaults to webm.
func ObjectKey(now time.Time, filename, contentType string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" {
		base = ""
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	name := strings.TrimSuffix(base, filepath.Ext(base))

	name = unsafeKeyChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "recording"
	}

	ext = strings.ToLower(unsafeKeyChars.ReplaceAllString(ext, ""))
	if ext == "" {
		ext = ExtensionForType(contentType)
	}

	return fmt.Sprintf("%s%d-%s.%s", keyPrefix, now.UnixMilli(), name, ext)
}

// WithSuffix inserts -n before the extension of key, for retrying an upload
// whose key is already taken: recordings/1-memo.webm becomes recordings/1-memo-2.webm.
func WithSuffix(key string, n int) string {
	ext := path.Ext(key)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(key, ext), n, ext)
}

// ExtensionForType maps an audio content type to a file extension, defaulting to webm
func ExtensionForType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	if ext, ok := extensionsByType[strings.ToLower(strings.TrimSpace(base))]; ok {
		return ext
	}
	return "webm"
}

// ContentTypeOrDefault returns contentType, or DefaultContentType when empty
func ContentTypeOrDefault(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return DefaultContentType
	}
	return contentType
}
