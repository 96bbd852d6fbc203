package generation

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func list(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

var videoSchema = object(
	[]string{"topic", "totalDuration", "chapters", "summary"},
	map[string]*genai.Schema{
		"topic":         str(),
		"totalDuration": str(),
		"summary":       str(),
		"chapters": list(object(
			[]string{"title", "duration", "content", "visualCue"},
			map[string]*genai.Schema{
				"title":     str(),
				"duration":  str(),
				"content":   str(),
				"visualCue": str(),
			},
		)),
	},
)

var presentationSchema = object(
	[]string{"topic", "slides"},
	map[string]*genai.Schema{
		"topic": str(),
		"slides": list(object(
			[]string{"title", "bullets", "speakerNotes", "imageDescription"},
			map[string]*genai.Schema{
				"title":            str(),
				"bullets":          strList(),
				"speakerNotes":     str(),
				"imageDescription": str(),
			},
		)),
	},
)

var testSchema = object(
	[]string{"title", "subject", "questions"},
	map[string]*genai.Schema{
		"title":   str(),
		"subject": str(),
		"questions": list(object(
			[]string{"id", "text", "type", "explanation", "difficulty"},
			map[string]*genai.Schema{
				"id":            {Type: genai.TypeInteger},
				"text":          str(),
				"type":          {Type: genai.TypeString, Enum: []string{"MCQ", "SHORT", "LONG"}},
				"options":       strList(),
				"correctAnswer": str(),
				"explanation":   str(),
				"difficulty":    {Type: genai.TypeString, Enum: []string{"Easy", "Medium", "Hard"}},
			},
		)),
	},
)

var learningPathSchema = object(
	[]string{"goal", "schedule"},
	map[string]*genai.Schema{
		"goal": str(),
		"schedule": list(object(
			[]string{"day", "topic", "activities"},
			map[string]*genai.Schema{
				"day":        {Type: genai.TypeInteger},
				"topic":      str(),
				"activities": strList(),
			},
		)),
	},
)
