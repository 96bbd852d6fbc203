package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"sync/atomic"
	"time"

	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const (
	tutorInstruction = "You are a helpful tutor. Provide step-by-step solutions."
	jsonMIME         = "application/json"
)

// modelsAPI is the part of *genai.Models the generator uses.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

type GeminiGenerator struct {
	models     modelsAPI
	videos     videosAPI
	model      atomic.Pointer[string]
	videoModel atomic.Pointer[string]
	pollEvery  time.Duration
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	g := newGemini(client.Models, modelName)
	g.videos = genaiVideos{client: client}
	return g, nil
}

func newGemini(models modelsAPI, modelName string) *GeminiGenerator {
	g := &GeminiGenerator{models: models}
	g.SetModel(modelName)
	return g
}

// SetModel switches the model used by subsequent calls.
func (g *GeminiGenerator) SetModel(name string) {
	if name == "" {
		return
	}
	g.model.Store(&name)
}

func (g *GeminiGenerator) Model() string {
	if p := g.model.Load(); p != nil {
		return *p
	}
	return ""
}

func (g *GeminiGenerator) text(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.Model(), contents, cfg)
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// structured asks for JSON matching schema and decodes it into out.
func (g *GeminiGenerator) structured(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	text, err := g.text(ctx, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIME,
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFence(text)), out); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return nil
}

// stripFence removes a ```json fence some models add despite the MIME type.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (g *GeminiGenerator) VideoScript(ctx context.Context, req VideoRequest) (*model.VideoScript, error) {
	req = normalizeVideo(req)
	var script model.VideoScript
	if err := g.structured(ctx, videoPrompt(req), videoSchema, &script); err != nil {
		return nil, err
	}
	if err := check(&script); err != nil {
		return nil, err
	}
	return &script, nil
}

func (g *GeminiGenerator) Presentation(ctx context.Context, topic string, slides int) (*model.Presentation, error) {
	slides = clamp(slides, 1, MaxSlides)
	prompt := fmt.Sprintf("Create a presentation on %q with %d slides. Return JSON.", topic, slides)
	var p model.Presentation
	if err := g.structured(ctx, prompt, presentationSchema, &p); err != nil {
		return nil, err
	}
	if err := check(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *GeminiGenerator) Test(ctx context.Context, topic string, difficulty model.Difficulty, count int) (*model.GeneratedTest, error) {
	count = clamp(count, 1, MaxQuestions)
	prompt := fmt.Sprintf("Generate a test on %q. Difficulty: %s. Questions: %d. Mix of MCQ and Short answer. Return JSON.",
		topic, difficulty, count)
	var t model.GeneratedTest
	if err := g.structured(ctx, prompt, testSchema, &t); err != nil {
		return nil, err
	}
	t.Settings = model.DefaultTestSettings()
	if err := NormalizeTest(&t, difficulty); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *GeminiGenerator) LearningPath(ctx context.Context, goal string) (*model.LearningPath, error) {
	prompt := fmt.Sprintf("Create a %d-day learning plan to achieve: %q. Return JSON.", LearningPathDays, goal)
	var p model.LearningPath
	if err := g.structured(ctx, prompt, learningPathSchema, &p); err != nil {
		return nil, err
	}
	if err := NormalizePath(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *GeminiGenerator) Notes(ctx context.Context, topic, level string) (string, error) {
	prompt := fmt.Sprintf("Create revision notes for %q. Level: %s. Markdown format. Include Key Concepts, Mnemonics, Formulas.", topic, level)
	return g.text(ctx, genai.Text(prompt), nil)
}

func (g *GeminiGenerator) Ebook(ctx context.Context, topic string, onChunk func(string) error) error {
	prompt := fmt.Sprintf("Write a multi-chapter ebook on: %q. Include TOC, 3 Chapters, Summary. Format: Markdown.", topic)
	wrote := false
	for resp, err := range g.models.GenerateContentStream(ctx, g.Model(), genai.Text(prompt), nil) {
		if err != nil {
			return errors.Wrap(err, "stream content")
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		wrote = true
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	if !wrote {
		return errors.New("empty response from model")
	}
	return nil
}

func (g *GeminiGenerator) Doubt(ctx context.Context, question string, image []byte, mimeType string) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if len(image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(image, mimeType))
	}
	parts = append(parts, genai.NewPartFromText(question))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.text(ctx, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(tutorInstruction, genai.RoleUser),
	})
}

func (g *GeminiGenerator) CareerPath(ctx context.Context, interests string) (string, error) {
	prompt := fmt.Sprintf("Suggest 3 career paths based on these interests/skills: %q. Include required skills and college major. Markdown format.", interests)
	return g.text(ctx, genai.Text(prompt), nil)
}
