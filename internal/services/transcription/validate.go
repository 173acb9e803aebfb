package transcription

import (
	"fmt"
	"mime"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// MaxAudioSize is the default upload limit (50 MiB)
const MaxAudioSize int64 = 50 << 20

var allowedTypes = map[string]struct{}{
	"audio/webm": {},
	"audio/mp4":  {},
	"audio/mpeg": {},
	"audio/mp3":  {},
	"audio/wav":  {},
	"audio/ogg":  {},
	"audio/m4a":  {},
	"audio/aac":  {},
	"video/webm": {},
	"video/mp4":  {},
}

var audioExtension = regexp.MustCompile(`(?i)\.(mp3|wav|m4a|aac|ogg|webm|mp4)$`)

// ValidateAudio checks size and type. The type passes when either the MIME
// type is allowed or the filename has an audio extension.
func ValidateAudio(audio providers.Audio, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxAudioSize
	}

	size := int64(len(audio.Data))
	if size == 0 {
		return apperrors.ValidationError("audio", "audio file is empty")
	}
	if size > maxSize {
		return FileTooLarge(size, maxSize)
	}

	if !IsAllowedType(audio.MIMEType) && !audioExtension.MatchString(audio.Filename) {
		return apperrors.New(apperrors.ErrCodeUnsupportedMedia,
			fmt.Sprintf("Unsupported audio format: %s", audio.MIMEType)).
			WithDetail("content_type", audio.MIMEType).
			WithDetail("filename", audio.Filename)
	}
	return nil
}

// FileTooLarge is the error for a payload of size bytes over maxSize
func FileTooLarge(size, maxSize int64) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeFileTooLarge,
		fmt.Sprintf("File too large. Maximum size is %dMB.", maxSize>>20)).
		WithDetail("size", size).
		WithDetail("max_size", maxSize)
}

// IsAllowedType reports whether the media type, ignoring parameters, is accepted
func IsAllowedType(contentType string) bool {
	_, ok := allowedTypes[BaseType(contentType)]
	return ok
}

// BaseType strips parameters such as ";codecs=opus" and lowercases the type
func BaseType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// DetectContentType returns declared unless it is missing or generic, in
// which case the type is sniffed from the payload.
func DetectContentType(data []byte, declared string) string {
	base := BaseType(declared)
	if base != "" && base != "application/octet-stream" {
		return declared
	}
	sniffed := mimetype.Detect(data)
	if sniffed.Is("application/octet-stream") {
		return declared
	}
	return sniffed.String()
}
