package types

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// ReadAudio loads the multipart file in field. Reads stop one byte past
// limit so oversized uploads are reported without buffering them whole.
func ReadAudio(c *gin.Context, field string, limit int64) (providers.Audio, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return providers.Audio{}, err
		}
		return providers.Audio{}, apperrors.MissingFieldError(field)
	}

	if limit > 0 && fh.Size > limit {
		return providers.Audio{}, transcription.FileTooLarge(fh.Size, limit)
	}

	f, err := fh.Open()
	if err != nil {
		return providers.Audio{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Could not read uploaded file")
	}
	defer f.Close()

	reader := io.Reader(f)
	if limit > 0 {
		reader = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return providers.Audio{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Could not read uploaded file")
	}

	return providers.Audio{
		Data:     data,
		MIMEType: transcription.DetectContentType(data, fh.Header.Get("Content-Type")),
		Filename: fh.Filename,
	}, nil
}

// FormBool parses a stringified boolean form field; anything but "true" is false
func FormBool(c *gin.Context, field string) bool {
	return c.PostForm(field) == "true"
}
