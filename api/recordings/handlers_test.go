package recordings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/internal/models"
	recordingsService "github.com/killallgit/voicenotes-api/internal/services/recordings"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecordingService struct {
	mock.Mock
}

func (m *MockRecordingService) Save(ctx context.Context, in recordingsService.SaveInput) (*recordingsService.SaveResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordingsService.SaveResult), args.Error(1)
}

func (m *MockRecordingService) List(ctx context.Context, limit, offset int) ([]models.Recording, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recording), args.Error(1)
}

func (m *MockRecordingService) Get(ctx context.Context, id uint) (*models.Recording, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recording), args.Error(1)
}

func (m *MockRecordingService) Update(ctx context.Context, id uint, in recordingsService.UpdateInput) (*models.Recording, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recording), args.Error(1)
}

func (m *MockRecordingService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(m *MockRecordingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), &types.Dependencies{Recordings: m})
	return router
}

func notFound(id uint) error {
	return apperrors.Wrap(recordingsService.ErrRecordingNotFound, apperrors.ErrCodeNotFound, "Recording not found").WithDetail("id", id)
}

func saveRequest(t *testing.T, audio []byte, data string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if audio != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="audio"; filename="visit.webm"`)
		h.Set("Content-Type", "audio/webm")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	if data != "" {
		require.NoError(t, mw.WriteField("transcriptionData", data))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/save-recording", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSave(t *testing.T) {
	m := new(MockRecordingService)
	router := setupRouter(m)

	m.On("Save", mock.Anything, mock.MatchedBy(func(in recordingsService.SaveInput) bool {
		return string(in.Audio) == "audio" &&
			in.Filename == "visit.webm" &&
			in.ContentType == "audio/webm" &&
			in.Data.PolishedNote == "# Follow-up visit" &&
			assert.ObjectsAreEqual([]string{"Cardiology"}, in.Data.MedicalTopics)
	})).Return(&recordingsService.SaveResult{
		RecordingID: 42,
		AudioURL:    "http://localhost:8080/media/recordings/1-visit.webm",
		Title:       "Follow-up visit",
	}, nil)

	data := `{"rawTranscription":"raw","polishedNote":"# Follow-up visit","multiSpeakerOutput":"raw","medicalTopics":["Cardiology"],"service":"gemini"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, saveRequest(t, []byte("audio"), data))

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SaveRecordingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint(42), resp.RecordingID)
	assert.Equal(t, "Follow-up visit", resp.Title)
	assert.Contains(t, w.Body.String(), `"recordingId":42`)
	assert.Contains(t, w.Body.String(), `"audioUrl":`)
	m.AssertExpectations(t)
}

func TestSave_BadInput(t *testing.T) {
	tests := []struct {
		name     string
		audio    []byte
		data     string
		wantCode string
	}{
		{name: "missing audio", data: `{}`, wantCode: "MISSING_FIELD"},
		{name: "missing transcription data", audio: []byte("a"), wantCode: "MISSING_FIELD"},
		{name: "malformed transcription data", audio: []byte("a"), data: `{"polishedNote":`, wantCode: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockRecordingService)
			router := setupRouter(m)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, saveRequest(t, tt.audio, tt.data))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			m.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestSave_StorageFailure(t *testing.T) {
	m := new(MockRecordingService)
	router := setupRouter(m)
	m.On("Save", mock.Anything, mock.Anything).Return(nil, apperrors.StorageError("upload", assert.AnError))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, saveRequest(t, []byte("a"), `{"polishedNote":"x"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestList(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "explicit page", query: "?limit=10&offset=20", wantLimit: 10, wantOffset: 20},
		{name: "limit capped", query: "?limit=5000", wantLimit: 200, wantOffset: 0},
		{name: "malformed values", query: "?limit=abc&offset=-4", wantLimit: 50, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockRecordingService)
			router := setupRouter(m)
			m.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return([]models.Recording{
				{ID: 2, Title: "Newer"},
				{ID: 1, Title: "Older"},
			}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var resp types.RecordingsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, 2, resp.Count)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			assert.Equal(t, tt.wantOffset, resp.Offset)
			assert.Equal(t, "Newer", resp.Recordings[0].Title)
			m.AssertExpectations(t)
		})
	}
}

func TestGet(t *testing.T) {
	m := new(MockRecordingService)
	router := setupRouter(m)
	m.On("Get", mock.Anything, uint(7)).Return(&models.Recording{ID: 7, Title: "Standup"}, nil)
	m.On("Get", mock.Anything, uint(8)).Return(nil, notFound(8))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings/7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Standup"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings/8", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recording not found")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	m := new(MockRecordingService)
	router := setupRouter(m)

	m.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(in recordingsService.UpdateInput) bool {
		return in.Title != nil && *in.Title == "Renamed" && in.PolishedNote == nil
	})).Return(&models.Recording{ID: 3, Title: "Renamed"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/recordings/3", strings.NewReader(`{"title":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Renamed"`)
	m.AssertExpectations(t)
}

func TestUpdate_BadInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "invalid id", path: "/api/recordings/0", body: `{"title":"x"}`},
		{name: "malformed json", path: "/api/recordings/3", body: `{"title":`},
		{name: "no fields", path: "/api/recordings/3", body: `{}`},
		{name: "audio url is not editable", path: "/api/recordings/3", body: `{"audio_url":"http://elsewhere"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockRecordingService)
			router := setupRouter(m)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			m.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDelete(t *testing.T) {
	m := new(MockRecordingService)
	router := setupRouter(m)
	m.On("Delete", mock.Anything, uint(5)).Return(nil)
	m.On("Delete", mock.Anything, uint(6)).Return(notFound(6))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings/5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recording deleted")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings?id=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings?id=6", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.AssertNumberOfCalls(t, "Delete", 3)
}
