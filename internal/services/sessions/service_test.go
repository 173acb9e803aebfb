package sessions

import (
	"context"
	"testing"

	"github.com/killallgit/voicenotes-api/internal/database"
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
	kind  providers.Kind
	model string
}

func (m *MockProvider) Kind() providers.Kind { return m.kind }
func (m *MockProvider) Model() string        { return m.model }

func (m *MockProvider) Transcribe(ctx context.Context, audio providers.Audio, multiSpeaker bool) (*providers.Result, error) {
	args := m.Called(ctx, audio, multiSpeaker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.Result), args.Error(1)
}

func setupService(t *testing.T, p *MockProvider) *Service {
	db, err := database.Initialize("", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = db.Close() })
	return NewService(NewRepository(db.DB), providers.NewRegistry(p), 0)
}

func chunkAudio(name string) providers.Audio {
	return providers.Audio{Data: []byte(name), MIMEType: "audio/webm", Filename: name + ".webm"}
}

func TestService_IngestAndListChunks(t *testing.T) {
	ctx := context.Background()
	p := &MockProvider{kind: providers.KindOpenAIWhisper, model: "whisper-1"}
	svc := setupService(t, p)

	p.On("Transcribe", ctx, chunkAudio("c0"), false).Return(&providers.Result{Transcription: "hello"}, nil)
	p.On("Transcribe", ctx, chunkAudio("c1"), false).Return(nil, &providers.Error{Provider: p.kind, Kind: providers.ErrorUnavailable})
	p.On("Transcribe", ctx, chunkAudio("c2"), false).Return(&providers.Result{Transcription: "world"}, nil)

	// ingest out of order
	for _, idx := range []int{2, 0, 1} {
		name := []string{"c0", "c1", "c2"}[idx]
		_, err := svc.IngestChunk(ctx, ChunkInput{
			SessionID:    "sess-1",
			ChunkIndex:   idx,
			StartTimeSec: float64(idx) * 5,
			Audio:        chunkAudio(name),
			Provider:     providers.KindOpenAIWhisper,
		})
		require.NoError(t, err)
	}

	chunks, err := svc.ListChunks(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, "whisper-1", c.STTModel)
	}
	require.NotNil(t, chunks[0].Transcript)
	assert.Equal(t, "hello", *chunks[0].Transcript)
	assert.Nil(t, chunks[1].Transcript)
	assert.Equal(t, 10.0, chunks[2].StartTimeSec)

	other, err := svc.ListChunks(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_IngestDuplicateChunk(t *testing.T) {
	ctx := context.Background()
	p := &MockProvider{kind: providers.KindGemini}
	svc := setupService(t, p)
	p.On("Transcribe", ctx, mock.Anything, false).Return(&providers.Result{Transcription: "x"}, nil)

	in := ChunkInput{SessionID: "s", ChunkIndex: 0, Audio: chunkAudio("a")}
	_, err := svc.IngestChunk(ctx, in)
	require.NoError(t, err)

	_, err = svc.IngestChunk(ctx, in)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	assert.ErrorIs(t, err, ErrChunkExists)
}

func TestService_IngestValidation(t *testing.T) {
	ctx := context.Background()
	p := &MockProvider{kind: providers.KindGemini}
	svc := setupService(t, p)

	tests := []struct {
		name     string
		in       ChunkInput
		wantCode apperrors.ErrorCode
	}{
		{name: "missing session", in: ChunkInput{Audio: chunkAudio("a")}, wantCode: apperrors.ErrCodeMissingField},
		{name: "negative index", in: ChunkInput{SessionID: "s", ChunkIndex: -1, Audio: chunkAudio("a")}, wantCode: apperrors.ErrCodeValidation},
		{name: "bad media", in: ChunkInput{SessionID: "s", Audio: providers.Audio{Data: []byte("x"), MIMEType: "text/plain"}}, wantCode: apperrors.ErrCodeUnsupportedMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IngestChunk(ctx, tt.in)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
		})
	}
	p.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_FinalizeJoinsChunks(t *testing.T) {
	ctx := context.Background()
	p := &MockProvider{kind: providers.KindDeepgramNova, model: "nova-2"}
	svc := setupService(t, p)

	p.On("Transcribe", ctx, chunkAudio("a"), false).Return(&providers.Result{Transcription: "first part"}, nil)
	p.On("Transcribe", ctx, chunkAudio("b"), false).Return(nil, &providers.Error{Kind: providers.ErrorNetwork})
	p.On("Transcribe", ctx, chunkAudio("c"), false).Return(&providers.Result{Transcription: "last part"}, nil)

	for i, name := range []string{"a", "b", "c"} {
		_, err := svc.IngestChunk(ctx, ChunkInput{SessionID: "s1", ChunkIndex: i, Audio: chunkAudio(name), Provider: providers.KindDeepgramNova})
		require.NoError(t, err)
	}

	full, err := svc.Finalize(ctx, FinalizeInput{SessionID: "s1", DiarizationEnabled: true})
	require.NoError(t, err)
	require.NotNil(t, full.FullText)
	assert.Equal(t, "first part last part", *full.FullText)
	assert.Equal(t, "nova-2", full.STTModel)
	assert.True(t, full.DiarizationEnabled)
}

func TestService_FinalizeLastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t, &MockProvider{kind: providers.KindGemini})

	first := "draft"
	_, err := svc.Finalize(ctx, FinalizeInput{SessionID: "s", FullText: &first, STTModel: "gemini", DiarizationEnabled: true})
	require.NoError(t, err)

	second := "final text"
	full, err := svc.Finalize(ctx, FinalizeInput{SessionID: "s", FullText: &second, STTModel: "openai_whisper"})
	require.NoError(t, err)
	assert.Equal(t, "final text", *full.FullText)
	assert.Equal(t, "openai_whisper", full.STTModel)
	assert.False(t, full.DiarizationEnabled)

	got, err := svc.GetFull(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, full.ID, got.ID)
	assert.Equal(t, "final text", *got.FullText)
}

func TestService_GetFullNotFound(t *testing.T) {
	svc := setupService(t, &MockProvider{kind: providers.KindGemini})

	_, err := svc.GetFull(context.Background(), "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	assert.ErrorIs(t, err, ErrTranscriptNotFound)
}

func TestJoinChunks(t *testing.T) {
	s := func(v string) *string { return &v }
	chunks := []models.PartialTranscript{
		{Transcript: s(" one ")},
		{Transcript: nil},
		{Transcript: s("")},
		{Transcript: s("two")},
	}
	assert.Equal(t, "one two", JoinChunks(chunks))
	assert.Equal(t, "", JoinChunks(nil))
}
