package generation

import (
	"context"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"
	"mindclass_backend/pkg/monitoring"
	"mindclass_backend/pkg/tracing"

	"go.uber.org/zap"
)

// Instrumented wraps a Generator with tracing, metrics, an optional
// per-call timeout and error logging. Callers only ever see
// util.ErrGenerationFailed or the context error.
type Instrumented struct {
	next    Generator
	timeout time.Duration
	// videoTimeout bounds VideoPreview, which polls far longer than a
	// text call.
	videoTimeout time.Duration
}

func Instrument(next Generator, timeout time.Duration) *Instrumented {
	return &Instrumented{next: next, timeout: timeout, videoTimeout: timeout}
}

// WithVideoTimeout sets the bound for video previews. Zero keeps the
// text timeout.
func (g *Instrumented) WithVideoTimeout(d time.Duration) *Instrumented {
	if d > 0 {
		g.videoTimeout = d
	}
	return g
}

func (g *Instrumented) call(ctx context.Context, kind string, fn func(ctx context.Context) error) error {
	return g.callWithin(ctx, kind, g.timeout, fn)
}

func (g *Instrumented) callWithin(ctx context.Context, kind string, timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, span := tracing.Start(ctx, "generation."+kind)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	monitoring.ObserveGeneration(kind, start, err)
	tracing.End(span, err)
	if err == nil {
		return nil
	}

	logger.Log.Error("Content generation failed",
		zap.String("kind", kind),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	if ctx.Err() == context.Canceled {
		return context.Canceled
	}
	return util.ErrGenerationFailed
}

func (g *Instrumented) VideoScript(ctx context.Context, req VideoRequest) (out *model.VideoScript, err error) {
	err = g.call(ctx, "video", func(ctx context.Context) error {
		out, err = g.next.VideoScript(ctx, req)
		return err
	})
	return out, err
}

func (g *Instrumented) Presentation(ctx context.Context, topic string, slides int) (out *model.Presentation, err error) {
	err = g.call(ctx, "presentation", func(ctx context.Context) error {
		out, err = g.next.Presentation(ctx, topic, slides)
		return err
	})
	return out, err
}

func (g *Instrumented) Test(ctx context.Context, topic string, difficulty model.Difficulty, count int) (out *model.GeneratedTest, err error) {
	err = g.call(ctx, "test", func(ctx context.Context) error {
		out, err = g.next.Test(ctx, topic, difficulty, count)
		return err
	})
	return out, err
}

func (g *Instrumented) LearningPath(ctx context.Context, goal string) (out *model.LearningPath, err error) {
	err = g.call(ctx, "learning_path", func(ctx context.Context) error {
		out, err = g.next.LearningPath(ctx, goal)
		return err
	})
	return out, err
}

func (g *Instrumented) Notes(ctx context.Context, topic, level string) (out string, err error) {
	err = g.call(ctx, "notes", func(ctx context.Context) error {
		out, err = g.next.Notes(ctx, topic, level)
		return err
	})
	return out, err
}

func (g *Instrumented) Ebook(ctx context.Context, topic string, onChunk func(string) error) error {
	return g.call(ctx, "ebook", func(ctx context.Context) error {
		return g.next.Ebook(ctx, topic, onChunk)
	})
}

func (g *Instrumented) Doubt(ctx context.Context, question string, image []byte, mimeType string) (out string, err error) {
	err = g.call(ctx, "doubt", func(ctx context.Context) error {
		out, err = g.next.Doubt(ctx, question, image, mimeType)
		return err
	})
	return out, err
}

func (g *Instrumented) CareerPath(ctx context.Context, interests string) (out string, err error) {
	err = g.call(ctx, "career", func(ctx context.Context) error {
		out, err = g.next.CareerPath(ctx, interests)
		return err
	})
	return out, err
}

func (g *Instrumented) VideoPreview(ctx context.Context, prompt string) (out *model.VideoClip, err error) {
	err = g.callWithin(ctx, "video_preview", g.videoTimeout, func(ctx context.Context) error {
		out, err = g.next.VideoPreview(ctx, prompt)
		return err
	})
	return out, err
}

// SetVideoModel forwards a video model change when supported.
func (g *Instrumented) SetVideoModel(name string) {
	if m, ok := g.next.(interface{ SetVideoModel(string) }); ok {
		m.SetVideoModel(name)
	}
}

// SetModel forwards a model change to the wrapped generator when it
// supports one.
func (g *Instrumented) SetModel(name string) {
	if m, ok := g.next.(interface{ SetModel(string) }); ok {
		m.SetModel(name)
	}
}
