// Package generation produces AI-authored learning content. Every
// structured payload is decoded into model types and validated before it
// leaves the package.
package generation

import (
	"context"
	"fmt"

	"mindclass_backend/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	DefaultTestMinutes = 30
	LearningPathDays   = 5
	MaxQuestions       = 50
	MaxSlides          = 30
)

// VideoRequest describes the script to write.
type VideoRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Minutes  int    `json:"minutes"`
	Language string `json:"language"`
	Style    string `json:"style"`
}

// Generator is the boundary to the content model. Implementations honour
// ctx cancellation and never retry.
type Generator interface {
	VideoScript(ctx context.Context, req VideoRequest) (*model.VideoScript, error)
	Presentation(ctx context.Context, topic string, slides int) (*model.Presentation, error)
	Test(ctx context.Context, topic string, difficulty model.Difficulty, count int) (*model.GeneratedTest, error)
	LearningPath(ctx context.Context, goal string) (*model.LearningPath, error)
	Notes(ctx context.Context, topic, level string) (string, error)
	// Ebook streams markdown chunks to onChunk as they arrive. Returning an
	// error from onChunk stops the stream.
	Ebook(ctx context.Context, topic string, onChunk func(chunk string) error) error
	// Doubt answers a question, optionally about an image.
	Doubt(ctx context.Context, question string, image []byte, mimeType string) (string, error)
	CareerPath(ctx context.Context, interests string) (string, error)
	// VideoPreview renders a short clip for prompt. It may block for
	// minutes and returns early when ctx ends.
	VideoPreview(ctx context.Context, prompt string) (*model.VideoClip, error)
}

var validate = validator.New()

// ErrInvalidPayload marks content that decoded but failed validation.
var ErrInvalidPayload = errors.New("generated content failed validation")

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return nil
}

// NormalizeTest validates a generated test and fills in what the model may
// leave out: default settings, question ids unique within the test, and a
// difficulty on every question.
func NormalizeTest(t *model.GeneratedTest, fallback model.Difficulty) error {
	if err := check(t); err != nil {
		return err
	}
	seen := make(map[int]bool, len(t.Questions))
	renumber := false
	for i := range t.Questions {
		q := &t.Questions[i]
		if seen[q.ID] {
			renumber = true
		}
		seen[q.ID] = true
		if q.Difficulty == "" {
			q.Difficulty = fallback
		}
		if q.Type == model.QuestionMCQ {
			if len(q.Options) < 2 {
				return errors.Wrapf(ErrInvalidPayload, "question %d: MCQ needs at least two options", i)
			}
			if q.CorrectAnswer == "" {
				return errors.Wrapf(ErrInvalidPayload, "question %d: MCQ has no correct answer", i)
			}
		} else {
			q.Options = nil
		}
	}
	if renumber {
		for i := range t.Questions {
			t.Questions[i].ID = i
		}
	}
	if !t.Settings.ValidTimeLimit() {
		t.Settings.TimeLimitMinutes = model.DefaultTestSettings().TimeLimitMinutes
	}
	return nil
}

// NormalizePath validates a learning path and numbers its days from one.
func NormalizePath(p *model.LearningPath) error {
	for i := range p.Schedule {
		if p.Schedule[i].Day <= 0 {
			p.Schedule[i].Day = i + 1
		}
		p.Schedule[i].Completed = false
	}
	return check(p)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func videoPrompt(req VideoRequest) string {
	return fmt.Sprintf("Create a detailed educational video script for: %q.\n"+
		"Target Duration: %d minutes. Language: %s. Style: %s.\nReturn JSON.",
		req.Topic, req.Minutes, req.Language, req.Style)
}

func normalizeVideo(req VideoRequest) VideoRequest {
	req.Minutes = clamp(req.Minutes, 1, 60)
	if req.Language == "" {
		req.Language = "English"
	}
	if req.Style == "" {
		req.Style = "Engaging"
	}
	return req
}
