package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateManualDefaults(t *testing.T) {
	e := newEnv(t)

	test, err := e.tests.CreateManual("MC-1111-2222-3333", CreateManualTestRequest{
		Title:     "  Cells  ",
		Questions: []ManualQuestion{{Text: "What is a cell?", Answer: "Unit of life"}, {Text: "Name an organelle"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Cells", test.Title)
	assert.Equal(t, "General", test.Subject)
	assert.Equal(t, model.TestDraft, test.Status)
	assert.Equal(t, model.DefaultTestSettings(), test.Settings)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), test.AccessCode)
	require.Len(t, test.Questions, 2)
	for i, q := range test.Questions {
		assert.Equal(t, i, q.ID)
		assert.Equal(t, model.QuestionShort, q.Type)
		assert.Equal(t, "Manual question", q.Explanation)
		assert.Equal(t, model.Medium, q.Difficulty)
	}
	assert.Equal(t, "Unit of life", test.Questions[0].CorrectAnswer)
}

func TestCreateManualRejects(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		req  CreateManualTestRequest
		want error
	}{
		{"no questions", CreateManualTestRequest{Title: "Empty"}, util.ErrEmptyTest},
		{"zero time limit", CreateManualTestRequest{
			Title:     "Quick",
			Questions: []ManualQuestion{{Text: "Q"}},
			Settings:  &model.TestSettings{TimeLimitMinutes: 0},
		}, util.ErrInvalidTimeLimit},
		{"longer than a day", CreateManualTestRequest{
			Title:     "Marathon",
			Questions: []ManualQuestion{{Text: "Q"}},
			Settings:  &model.TestSettings{TimeLimitMinutes: model.MaxTimeLimitMinutes + 1},
		}, util.ErrInvalidTimeLimit},
		{"seconds overflow", CreateManualTestRequest{
			Title:     "Forever",
			Questions: []ManualQuestion{{Text: "Q"}},
			Settings:  &model.TestSettings{TimeLimitMinutes: 1 << 62},
		}, util.ErrInvalidTimeLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.tests.CreateManual("MC-1111-2222-3333", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateFromAI(t *testing.T) {
	e := newEnv(t)

	test, err := e.tests.CreateFromAI(context.Background(), "MC-1111-2222-3333", CreateAITestRequest{Topic: "Optics", Count: 4})
	require.NoError(t, err)

	assert.Equal(t, model.TestDraft, test.Status)
	assert.Len(t, test.Questions, 4)
	assert.Equal(t, 30, test.Settings.TimeLimitMinutes)

	stored, err := e.tests.Get(test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.AccessCode, stored.AccessCode)
}

func TestStatusTransitions(t *testing.T) {
	e := newEnv(t)
	owner := "MC-1111-2222-3333"
	test, err := e.tests.CreateManual(owner, CreateManualTestRequest{Title: "T", Questions: []ManualQuestion{{Text: "Q"}}})
	require.NoError(t, err)

	_, err = e.tests.End(owner, test.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	_, err = e.tests.GoLive("MC-9999-9999-9999", test.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	live, err := e.tests.GoLive(owner, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TestLive, live.Status)

	found, err := e.tests.FindLiveByCode(test.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, test.ID, found.ID)

	_, err = e.tests.GoLive(owner, test.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	ended, err := e.tests.End(owner, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TestEnded, ended.Status)

	_, err = e.tests.FindLiveByCode(test.AccessCode)
	assert.Error(t, err)

	_, err = e.tests.Get("missing")
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestUniqueCodesAmongOpenTests(t *testing.T) {
	e := newEnv(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		test, err := e.tests.CreateManual("MC-1111-2222-3333", CreateManualTestRequest{Title: "T", Questions: []ManualQuestion{{Text: "Q"}}})
		require.NoError(t, err)
		assert.False(t, seen[test.AccessCode], "duplicate code %s", test.AccessCode)
		seen[test.AccessCode] = true
	}
}

func TestSeedDemo(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.tests.SeedDemo())
	require.NoError(t, e.tests.SeedDemo())

	all, err := e.tests.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	live, err := e.tests.FindLiveByCode(DemoAccessCode)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis Practice Test", live.Title)
	assert.Equal(t, 10, live.Settings.TimeLimitMinutes)
}

func TestExportPDF(t *testing.T) {
	e := newEnv(t)
	owner := "MC-1111-2222-3333"
	test, err := e.tests.CreateFromAI(context.Background(), owner, CreateAITestRequest{Topic: "Optics", Count: 3})
	require.NoError(t, err)

	url, err := e.tests.ExportPDF(context.Background(), owner, test.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/tests/"+test.ID+"-key.pdf", url)

	data, err := os.ReadFile(filepath.Join(e.cfg.Storage.LocalPath, "tests", test.ID+"-key.pdf"))
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")

	_, err = e.tests.ExportPDF(context.Background(), "MC-9999-9999-9999", test.ID, true)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = e.tests.ExportPDF(context.Background(), "MC-9999-9999-9999", test.ID, false)
	assert.NoError(t, err)
}
