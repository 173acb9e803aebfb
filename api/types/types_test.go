package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencies_UploadLimit(t *testing.T) {
	var nilDeps *Dependencies
	assert.Equal(t, transcription.MaxAudioSize, nilDeps.UploadLimit())
	assert.Equal(t, transcription.MaxAudioSize, (&Dependencies{}).UploadLimit())
	assert.Equal(t, int64(1024), (&Dependencies{MaxUploadSize: 1024}).UploadLimit())
}

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "provider auth",
			err:        &providers.Error{Provider: providers.KindOpenAIWhisper, Kind: providers.ErrorAuth, StatusCode: 401},
			wantStatus: http.StatusBadGateway,
			wantCode:   "PROVIDER_AUTH",
			wantError:  "Invalid or unauthorized API key for openai_whisper. Please check your configuration.",
		},
		{
			name:       "provider quota",
			err:        &providers.Error{Provider: providers.KindGemini, Kind: providers.ErrorQuota},
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "PROVIDER_QUOTA",
		},
		{
			name:       "provider not configured",
			err:        &providers.Error{Provider: providers.KindDeepgramNova, Kind: providers.ErrorNotConfigured},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "PROVIDER_NOT_CONFIGURED",
		},
		{
			name:       "provider timeout",
			err:        &providers.Error{Provider: providers.KindGemini, Kind: providers.ErrorTimeout},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "API_TIMEOUT",
		},
		{
			name:       "provider bad response",
			err:        &providers.Error{Provider: providers.KindGemini, Kind: providers.ErrorBadResponse},
			wantStatus: http.StatusBadGateway,
			wantCode:   "EXTERNAL_SERVICE",
		},
		{
			name:       "file too large",
			err:        transcription.FileTooLarge(60<<20, 50<<20),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "FILE_TOO_LARGE",
			wantError:  "File too large. Maximum size is 50MB.",
		},
		{
			name:       "not found",
			err:        apperrors.NotFound("Recording", 7),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantError:  "Recording not found",
		},
		{
			name:       "database error hides cause",
			err:        apperrors.DatabaseError("insert", errors.New("disk I/O error")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATABASE_QUERY",
			wantError:  "Internal server error",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

			SendError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw    string
		wantOK bool
		want   uint
	}{
		{raw: "12", wantOK: true, want: 12},
		{raw: "0", wantOK: false},
		{raw: "-3", wantOK: false},
		{raw: "abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, ok := ParseUintParam(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestParseUintQuery_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/recordings", nil)

	_, ok := ParseUintQuery(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FIELD")
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=20&offset=x", nil)

	assert.Equal(t, 20, QueryInt(c, "limit", 50))
	assert.Equal(t, 0, QueryInt(c, "offset", 0))
	assert.Equal(t, 7, QueryInt(c, "missing", 7))
}

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("service", "gemini"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReadAudio(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reads file and keeps declared type", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = multipartRequest(t, "audio", "memo.webm", "audio/webm;codecs=opus", []byte("webm-data"))

		audio, err := ReadAudio(c, "audio", 1024)
		require.NoError(t, err)
		assert.Equal(t, []byte("webm-data"), audio.Data)
		assert.Equal(t, "audio/webm;codecs=opus", audio.MIMEType)
		assert.Equal(t, "memo.webm", audio.Filename)
	})

	t.Run("missing file", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = multipartRequest(t, "", "", "", nil)

		_, err := ReadAudio(c, "audio", 1024)
		assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))
	})

	t.Run("oversized file", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = multipartRequest(t, "audio", "memo.webm", "audio/webm", bytes.Repeat([]byte("a"), 64))

		_, err := ReadAudio(c, "audio", 16)
		assert.Equal(t, apperrors.ErrCodeFileTooLarge, apperrors.GetCode(err))
	})
}

func TestFormBool(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("a=true&b=1&c=false"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.True(t, FormBool(c, "a"))
	assert.False(t, FormBool(c, "b"))
	assert.False(t, FormBool(c, "c"))
	assert.False(t, FormBool(c, "d"))
}
