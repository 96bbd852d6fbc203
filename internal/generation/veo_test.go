package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindclass_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeVideos finishes its operation after polls status checks; a negative
// polls never finishes.
type fakeVideos struct {
	polls    int
	checked  int
	opErr    map[string]any
	noVideo  bool
	inline   []byte
	download []byte

	model      string
	prompt     string
	config     *genai.GenerateVideosConfig
	downloaded bool
}

func (f *fakeVideos) op() *genai.GenerateVideosOperation {
	op := &genai.GenerateVideosOperation{Name: "operations/veo-1"}
	if f.polls < 0 || f.checked < f.polls {
		return op
	}
	op.Done = true
	op.Error = f.opErr
	if !f.noVideo && f.opErr == nil {
		op.Response = &genai.GenerateVideosResponse{GeneratedVideos: []*genai.GeneratedVideo{{
			Video: &genai.Video{URI: "https://generativelanguage.googleapis.com/files/abc", VideoBytes: f.inline},
		}}}
	}
	return op
}

func (f *fakeVideos) GenerateVideos(ctx context.Context, model, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	f.model, f.prompt, f.config = model, prompt, config
	return f.op(), nil
}

func (f *fakeVideos) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if op.Name != "operations/veo-1" {
		return nil, errors.New("unknown operation")
	}
	f.checked++
	return f.op(), nil
}

func (f *fakeVideos) Download(ctx context.Context, video *genai.Video) ([]byte, error) {
	f.downloaded = true
	return f.download, nil
}

func newVeo(videos videosAPI) *GeminiGenerator {
	g := newGemini(&fakeModels{}, "m")
	g.videos = videos
	g.pollEvery = time.Millisecond
	return g
}

func TestVideoPreviewPollsUntilDone(t *testing.T) {
	fake := &fakeVideos{polls: 3, download: []byte("mp4-bytes")}
	g := newVeo(fake)

	clip, err := g.VideoPreview(context.Background(), "  volcano eruption ")
	require.NoError(t, err)

	assert.Equal(t, 3, fake.checked)
	assert.Equal(t, DefaultVideoModel, fake.model)
	assert.Equal(t, "Educational animation: volcano eruption, clear visibility, 4k, photorealistic or animated style.", fake.prompt)
	assert.Equal(t, int32(1), fake.config.NumberOfVideos)
	assert.Equal(t, "720p", fake.config.Resolution)
	assert.Equal(t, "16:9", fake.config.AspectRatio)

	assert.True(t, fake.downloaded)
	assert.Equal(t, []byte("mp4-bytes"), clip.Data)
	assert.Equal(t, "video/mp4", clip.MIMEType)
	assert.Empty(t, clip.URI, "the provider URI needs the API key and must not leak")
}

func TestVideoPreviewInlineBytes(t *testing.T) {
	fake := &fakeVideos{inline: []byte("inline")}
	g := newVeo(fake)
	g.SetVideoModel("veo-3.0-generate-001")

	clip, err := g.VideoPreview(context.Background(), "tides")
	require.NoError(t, err)
	assert.Zero(t, fake.checked)
	assert.False(t, fake.downloaded)
	assert.Equal(t, []byte("inline"), clip.Data)
	assert.Equal(t, "veo-3.0-generate-001", fake.model)
}

func TestVideoPreviewFailures(t *testing.T) {
	tests := []struct {
		name   string
		videos *fakeVideos
		want   error
	}{
		{"operation error", &fakeVideos{polls: 1, opErr: map[string]any{"code": 3, "message": "prompt blocked"}}, nil},
		{"no video", &fakeVideos{noVideo: true}, ErrNoVideo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newVeo(tt.videos).VideoPreview(context.Background(), "x")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}

	_, err := newGemini(&fakeModels{}, "m").VideoPreview(context.Background(), "x")
	assert.Error(t, err)
}

func TestVideoPreviewStopsWithContext(t *testing.T) {
	fake := &fakeVideos{polls: -1}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := newVeo(fake).VideoPreview(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, fake.downloaded)
}

func TestInstrumentedVideoTimeout(t *testing.T) {
	g := Instrument(newVeo(&fakeVideos{polls: -1}), time.Hour).WithVideoTimeout(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := g.VideoPreview(context.Background(), "x")
		done <- err
	}()
	select {
	case err := <-done:
		assert.Equal(t, util.ErrGenerationFailed, err)
	case <-time.After(5 * time.Second):
		t.Fatal("video preview ignored its timeout")
	}
}

func TestStaticVideoPreview(t *testing.T) {
	clip, err := NewStaticGenerator().VideoPreview(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, StaticPreviewURI, clip.URI)
	assert.Empty(t, clip.Data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Instrument(NewStaticGenerator(), 0).VideoPreview(ctx, "x")
	assert.Equal(t, context.Canceled, err)
}
