package model

// Generation payloads, validated at the AI boundary before use.

type VideoChapter struct {
	Title     string `json:"title" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
	Content   string `json:"content" validate:"required"`
	VisualCue string `json:"visualCue" validate:"required"`
}

type VideoScript struct {
	Topic         string         `json:"topic" validate:"required"`
	TotalDuration string         `json:"totalDuration" validate:"required"`
	Chapters      []VideoChapter `json:"chapters" validate:"required,min=1,dive"`
	Summary       string         `json:"summary" validate:"required"`
}

type Slide struct {
	Title            string   `json:"title" validate:"required"`
	Bullets          []string `json:"bullets" validate:"required"`
	SpeakerNotes     string   `json:"speakerNotes" validate:"required"`
	ImageDescription string   `json:"imageDescription" validate:"required"`
}

type Presentation struct {
	Topic  string  `json:"topic" validate:"required"`
	Slides []Slide `json:"slides" validate:"required,min=1,dive"`
}

// GeneratedTest is the test draft returned by the generator; the caller
// assigns identity, status and access code.
type GeneratedTest struct {
	Title     string       `json:"title" validate:"required"`
	Subject   string       `json:"subject" validate:"required"`
	Questions []Question   `json:"questions" validate:"required,min=1,dive"`
	Settings  TestSettings `json:"settings"`
}

// VideoClip is a short generated preview. Data holds the raw bytes until
// they are uploaded; URI is where clients fetch the clip.
// swagger:model VideoClip
type VideoClip struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}
