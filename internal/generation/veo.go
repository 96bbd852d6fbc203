package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const (
	DefaultVideoModel = "veo-3.1-fast-generate-preview"
	defaultPollEvery  = 5 * time.Second
	videoMIME         = "video/mp4"
)

var ErrNoVideo = errors.New("model returned no video")

// videosAPI is the slice of the genai client a video preview needs.
type videosAPI interface {
	GenerateVideos(ctx context.Context, model, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
	Download(ctx context.Context, video *genai.Video) ([]byte, error)
}

type genaiVideos struct {
	client *genai.Client
}

func (v genaiVideos) GenerateVideos(ctx context.Context, model, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return v.client.Models.GenerateVideos(ctx, model, prompt, nil, config)
}

func (v genaiVideos) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return v.client.Operations.GetVideosOperation(ctx, op, nil)
}

func (v genaiVideos) Download(ctx context.Context, video *genai.Video) ([]byte, error) {
	return v.client.Files.Download(ctx, genai.NewDownloadURIFromVideo(video), nil)
}

func previewPrompt(prompt string) string {
	return fmt.Sprintf("Educational animation: %s, clear visibility, 4k, photorealistic or animated style.", strings.TrimSpace(prompt))
}

// SetVideoModel switches the model used for video previews.
func (g *GeminiGenerator) SetVideoModel(name string) {
	if name == "" {
		return
	}
	g.videoModel.Store(&name)
}

func (g *GeminiGenerator) VideoModel() string {
	if p := g.videoModel.Load(); p != nil {
		return *p
	}
	return DefaultVideoModel
}

// VideoPreview starts a Veo job and polls it until the clip is ready or
// ctx ends. The clip bytes are downloaded so the caller can store them;
// the provider URI needs the API key and is never handed out.
func (g *GeminiGenerator) VideoPreview(ctx context.Context, prompt string) (*model.VideoClip, error) {
	if g.videos == nil {
		return nil, errors.New("video generation is not configured")
	}
	op, err := g.videos.GenerateVideos(ctx, g.VideoModel(), previewPrompt(prompt), &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    "16:9",
	})
	if err != nil {
		return nil, errors.Wrap(err, "start video generation")
	}

	every := g.pollEvery
	if every <= 0 {
		every = defaultPollEvery
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		if op, err = g.videos.GetVideosOperation(ctx, op); err != nil {
			return nil, errors.Wrap(err, "poll video operation")
		}
	}

	if len(op.Error) > 0 {
		return nil, errors.Errorf("video operation %s failed: %v", op.Name, op.Error["message"])
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, ErrNoVideo
	}
	video := op.Response.GeneratedVideos[0].Video
	data := video.VideoBytes
	if len(data) == 0 {
		if data, err = g.videos.Download(ctx, video); err != nil {
			return nil, errors.Wrap(err, "download video")
		}
	}
	mime := video.MIMEType
	if mime == "" {
		mime = videoMIME
	}
	return &model.VideoClip{MIMEType: mime, Data: data}, nil
}
