package session

import (
	"mindclass_backend/internal/model"
)

// QuestionView is a question as shown to the student. The correct answer
// and explanation are only filled in once the attempt has a result.
type QuestionView struct {
	ID            int                `json:"id"`
	Text          string             `json:"text"`
	Type          model.QuestionType `json:"type"`
	Options       []string           `json:"options,omitempty"`
	Difficulty    model.Difficulty   `json:"difficulty,omitempty"`
	CorrectAnswer string             `json:"correctAnswer,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
}

type Snapshot struct {
	View             View              `json:"view"`
	TestID           string            `json:"testId,omitempty"`
	Title            string            `json:"title,omitempty"`
	Subject          string            `json:"subject,omitempty"`
	RemainingSeconds int               `json:"remainingSeconds"`
	ConfirmPending   bool              `json:"confirmPending"`
	Questions        []QuestionView    `json:"questions,omitempty"`
	Answers          map[int]string    `json:"answers,omitempty"`
	Result           *model.TestResult `json:"result,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{View: s.view}
	a := s.attempt
	if a == nil {
		return snap
	}

	snap.TestID = a.test.ID
	snap.Title = a.test.Title
	snap.Subject = a.test.Subject
	snap.RemainingSeconds = a.remaining
	snap.ConfirmPending = a.confirming

	reveal := a.submitted
	snap.Questions = make([]QuestionView, 0, len(a.order))
	for _, idx := range a.order {
		q := a.test.Questions[idx]
		qv := QuestionView{
			ID:         q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		}
		if reveal {
			qv.CorrectAnswer = q.CorrectAnswer
			qv.Explanation = q.Explanation
		}
		snap.Questions = append(snap.Questions, qv)
	}

	snap.Answers = make(map[int]string, len(a.answers))
	for k, v := range a.answers {
		snap.Answers[k] = v
	}
	if a.result != nil {
		res := *a.result
		snap.Result = &res
	}
	return snap
}
