package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/session"
	"mindclass_backend/internal/util"

	"github.com/pkg/errors"
)

var (
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotAnImage    = errors.New("attachment must be an image")
)

type NotesRequest struct {
	Topic string `json:"topic" binding:"required"`
	Level string `json:"level"`
	Save  bool   `json:"save"`
}

type PresentationRequest struct {
	Topic  string `json:"topic" binding:"required"`
	Slides int    `json:"slides"`
	Save   bool   `json:"save"`
}

type VideoPreviewRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type PracticeTestRequest struct {
	Topic      string           `json:"topic" binding:"required"`
	Difficulty model.Difficulty `json:"difficulty"`
}

// GradePracticeRequest carries the questions as they were served together
// with the student's picks keyed by question id.
type GradePracticeRequest struct {
	Questions []model.Question `json:"questions" binding:"required"`
	Answers   map[int]string   `json:"answers"`
}

type PracticeResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type VideoScriptRequest struct {
	generation.VideoRequest
	Save bool `json:"save"`
}

// Generated pairs a payload with the library item it was saved as, if any.
type Generated[T any] struct {
	Content T                  `json:"content"`
	Item    *model.LibraryItem `json:"item,omitempty"`
}

// ContentService fronts the generator for the self-study tools and can
// keep their output in the user's library.
type ContentService struct {
	Generator generation.Generator
	Library   *LibraryService
	Storage   *StorageService
}

func NewContentService(gen generation.Generator, library *LibraryService, storage *StorageService) *ContentService {
	return &ContentService{Generator: gen, Library: library, Storage: storage}
}

func (s *ContentService) VideoScript(ctx context.Context, userID string, req VideoScriptRequest) (*Generated[*model.VideoScript], error) {
	script, err := s.Generator.VideoScript(ctx, req.VideoRequest)
	if err != nil {
		return nil, err
	}
	out := &Generated[*model.VideoScript]{Content: script}
	if req.Save {
		out.Item, err = s.Library.Save(userID, model.ContentVideo, script.Topic, script)
	}
	return out, err
}

func (s *ContentService) Presentation(ctx context.Context, userID string, req PresentationRequest) (*Generated[*model.Presentation], error) {
	if req.Slides <= 0 {
		req.Slides = 5
	}
	p, err := s.Generator.Presentation(ctx, req.Topic, req.Slides)
	if err != nil {
		return nil, err
	}
	out := &Generated[*model.Presentation]{Content: p}
	if req.Save {
		out.Item, err = s.Library.Save(userID, model.ContentPPT, p.Topic, p)
	}
	return out, err
}

func (s *ContentService) Notes(ctx context.Context, userID string, req NotesRequest) (*Generated[string], error) {
	if req.Level == "" {
		req.Level = "Detailed"
	}
	notes, err := s.Generator.Notes(ctx, req.Topic, req.Level)
	if err != nil {
		return nil, err
	}
	out := &Generated[string]{Content: notes}
	if req.Save {
		out.Item, err = s.Library.Save(userID, model.ContentNotes, req.Topic, map[string]string{"markdown": notes, "level": req.Level})
	}
	return out, err
}

// Ebook streams chunks to onChunk and, when save is set, stores the whole
// book once the stream completes.
func (s *ContentService) Ebook(ctx context.Context, userID, topic string, save bool, onChunk func(string) error) (*model.LibraryItem, error) {
	var book strings.Builder
	err := s.Generator.Ebook(ctx, topic, func(chunk string) error {
		book.WriteString(chunk)
		return onChunk(chunk)
	})
	if err != nil || !save {
		return nil, err
	}
	return s.Library.Save(userID, model.ContentEbook, topic, map[string]string{"markdown": book.String()})
}

// Doubt answers a question with an optional image attachment.
func (s *ContentService) Doubt(ctx context.Context, question string, image []byte) (string, error) {
	mimeType := ""
	if len(image) > 0 {
		if len(image) > util.MaxDoubtImageBytes {
			return "", ErrImageTooLarge
		}
		mt, err := util.ValidateMimeType(bytes.NewReader(image), []string{util.MimeImage})
		if err != nil {
			return "", ErrNotAnImage
		}
		mimeType = mt
	}
	return s.Generator.Doubt(ctx, question, image, mimeType)
}

func (s *ContentService) CareerPath(ctx context.Context, interests string) (string, error) {
	return s.Generator.CareerPath(ctx, interests)
}

// VideoPreview renders a short clip and, when the generator hands back raw
// bytes, uploads them so the client gets a URL from our own storage.
func (s *ContentService) VideoPreview(ctx context.Context, userID, prompt string) (*model.VideoClip, error) {
	clip, err := s.Generator.VideoPreview(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if len(clip.Data) == 0 {
		return clip, nil
	}
	name := fmt.Sprintf("previews/%s/%s.mp4", userID, model.NewID())
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(clip.Data), int64(len(clip.Data)), clip.MIMEType)
	if err != nil {
		return nil, err
	}
	return &model.VideoClip{URI: url, MIMEType: clip.MIMEType}, nil
}

// PracticeTestSize is the length of a self-study test.
const PracticeTestSize = 5

// PracticeTest generates a self-graded quiz. The answer key stays in the
// payload because nothing is recorded.
func (s *ContentService) PracticeTest(ctx context.Context, req PracticeTestRequest) (*model.GeneratedTest, error) {
	if req.Difficulty == "" {
		req.Difficulty = model.Medium
	}
	return s.Generator.Test(ctx, strings.TrimSpace(req.Topic), req.Difficulty, PracticeTestSize)
}

// GradePractice scores MCQ picks against the served questions. Percent is
// rounded against every question, so free-text ones count as misses.
func (s *ContentService) GradePractice(req GradePracticeRequest) (*PracticeResult, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrEmptyTest
	}
	correct, total := session.Score(&model.Test{Questions: req.Questions}, req.Answers)
	return &PracticeResult{
		Correct: correct,
		Total:   total,
		Percent: int(math.Round(float64(correct) * 100 / float64(total))),
	}, nil
}
