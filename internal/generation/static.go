package generation

import (
	"context"
	"fmt"
	"strings"

	"mindclass_backend/internal/model"
)

// StaticGenerator returns deterministic content built from the request. It
// backs offline demos and tests and needs no API key.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (StaticGenerator) VideoScript(ctx context.Context, req VideoRequest) (*model.VideoScript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req = normalizeVideo(req)
	parts := []string{"Introduction", "Core Ideas", "Recap"}
	script := &model.VideoScript{
		Topic:         req.Topic,
		TotalDuration: fmt.Sprintf("%d minutes", req.Minutes),
		Summary:       fmt.Sprintf("A %s walkthrough of %s in %s.", strings.ToLower(req.Style), req.Topic, req.Language),
	}
	for _, p := range parts {
		script.Chapters = append(script.Chapters, model.VideoChapter{
			Title:     fmt.Sprintf("%s: %s", p, req.Topic),
			Duration:  fmt.Sprintf("%d:00", max(1, req.Minutes/len(parts))),
			Content:   fmt.Sprintf("Narration covering the %s of %s.", strings.ToLower(p), req.Topic),
			VisualCue: fmt.Sprintf("Animated diagram about %s", req.Topic),
		})
	}
	return script, check(script)
}

func (StaticGenerator) Presentation(ctx context.Context, topic string, slides int) (*model.Presentation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slides = clamp(slides, 1, MaxSlides)
	p := &model.Presentation{Topic: topic}
	for i := 1; i <= slides; i++ {
		p.Slides = append(p.Slides, model.Slide{
			Title:            fmt.Sprintf("%s (%d/%d)", topic, i, slides),
			Bullets:          []string{fmt.Sprintf("Key point %d", i), "Example", "Takeaway"},
			SpeakerNotes:     fmt.Sprintf("Explain part %d of %s.", i, topic),
			ImageDescription: fmt.Sprintf("Illustration for %s", topic),
		})
	}
	return p, check(p)
}

func (StaticGenerator) Test(ctx context.Context, topic string, difficulty model.Difficulty, count int) (*model.GeneratedTest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count = clamp(count, 1, MaxQuestions)
	t := &model.GeneratedTest{
		Title:   fmt.Sprintf("%s Quiz", topic),
		Subject: topic,
	}
	for i := 0; i < count; i++ {
		q := model.Question{
			ID:          i,
			Difficulty:  difficulty,
			Explanation: fmt.Sprintf("Review the section on %s.", topic),
		}
		if i%2 == 0 {
			q.Type = model.QuestionMCQ
			q.Text = fmt.Sprintf("Which statement about %s is correct? (%d)", topic, i+1)
			q.Options = []string{"Statement A", "Statement B", "Statement C", "Statement D"}
			q.CorrectAnswer = "Statement A"
		} else {
			q.Type = model.QuestionShort
			q.Text = fmt.Sprintf("Briefly explain one idea from %s. (%d)", topic, i+1)
		}
		t.Questions = append(t.Questions, q)
	}
	if err := NormalizeTest(t, difficulty); err != nil {
		return nil, err
	}
	return t, nil
}

func (StaticGenerator) LearningPath(ctx context.Context, goal string) (*model.LearningPath, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	topics := []string{"Foundations", "Key Concepts", "Practice", "Applications", "Review"}
	p := &model.LearningPath{Goal: goal}
	for i := 0; i < LearningPathDays; i++ {
		p.Schedule = append(p.Schedule, model.DailyPlan{
			Day:        i + 1,
			Topic:      fmt.Sprintf("%s of %s", topics[i%len(topics)], goal),
			Activities: []string{"Read a short lesson", "Solve 5 practice problems"},
		})
	}
	return p, NormalizePath(p)
}

func (StaticGenerator) Notes(ctx context.Context, topic, level string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("# %s\n\n_Level: %s_\n\n## Key Concepts\n- Definition of %s\n\n## Mnemonics\n- Make up a phrase from the first letters.\n\n## Formulas\n- None required.\n", topic, level, topic), nil
}

func (StaticGenerator) Ebook(ctx context.Context, topic string, onChunk func(string) error) error {
	chunks := []string{
		fmt.Sprintf("# %s\n\n## Table of Contents\n1. Basics\n2. Deeper\n3. Practice\n\n", topic),
		"## Chapter 1: Basics\n\nThe essentials.\n\n",
		"## Chapter 2: Deeper\n\nHow the parts connect.\n\n",
		"## Chapter 3: Practice\n\nWorked examples.\n\n",
		"## Summary\n\nWhat to remember.\n",
	}
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func (StaticGenerator) Doubt(ctx context.Context, question string, image []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	if len(image) > 0 {
		fmt.Fprintf(&b, "Looking at the attached %s image.\n\n", mimeType)
	}
	fmt.Fprintf(&b, "**Question:** %s\n\n1. Identify what is being asked.\n2. Recall the relevant rule.\n3. Apply it step by step.\n", question)
	return b.String(), nil
}

func (StaticGenerator) CareerPath(ctx context.Context, interests string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("## Career paths for: %s\n\n1. Research Scientist\n2. Engineer\n3. Educator\n", interests), nil
}

// StaticPreviewURI is the clip every offline video preview points at.
const StaticPreviewURI = "https://storage.googleapis.com/mindclass-demo/preview.mp4"

func (StaticGenerator) VideoPreview(ctx context.Context, prompt string) (*model.VideoClip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &model.VideoClip{URI: StaticPreviewURI, MIMEType: videoMIME}, nil
}
