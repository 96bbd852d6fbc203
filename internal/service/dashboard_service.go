package service

import (
	"fmt"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuickAction points the client at one of its views.
type QuickAction struct {
	Label string `json:"label"`
	View  string `json:"view"`
	Sub   string `json:"sub"`
}

type Dashboard struct {
	Role         model.UserRole `json:"role"`
	Name         string         `json:"name"`
	Stats        []Stat         `json:"stats"`
	QuickActions []QuickAction  `json:"quickActions"`
}

var studentActions = []QuickAction{
	{Label: "LIVE TEST", View: "TEST_MANAGER", Sub: "Join via Code"},
	{Label: "MY ASSIGNMENTS", View: "ASSIGNMENTS", Sub: "View Pending"},
	{Label: "MY CLASSROOMS", View: "CLASSROOMS", Sub: "View Classes"},
	{Label: "VIDEO TEACHER", View: "VIDEO_GEN", Sub: "AI Generated"},
	{Label: "SMART NOTES", View: "NOTES_GEN", Sub: "Revision"},
	{Label: "MY PROFILE", View: "PROFILE", Sub: "Settings"},
}

var teacherActions = []QuickAction{
	{Label: "CREATE CLASSROOM", View: "CLASSROOMS", Sub: "New Batch"},
	{Label: "CREATE TEST", View: "TEST_MANAGER", Sub: "AI or Manual"},
	{Label: "INVITE STUDENTS", View: "SOCIAL", Sub: "Send Invites"},
	{Label: "ASSIGNMENTS", View: "ASSIGNMENTS", Sub: "Manage Work"},
	{Label: "ANALYTICS", View: "ANALYTICS", Sub: "Results Sheet"},
	{Label: "MY PROFILE", View: "PROFILE", Sub: "Settings"},
}

type DashboardService struct {
	Tests       repository.TestStore
	Results     repository.ResultStore
	Classrooms  *ClassroomService
	Assignments *AssignmentService
	Paths       repository.LearningPathStore
}

func NewDashboardService(
	tests repository.TestStore,
	results repository.ResultStore,
	classrooms *ClassroomService,
	assignments *AssignmentService,
	paths repository.LearningPathStore,
) *DashboardService {
	return &DashboardService{
		Tests:       tests,
		Results:     results,
		Classrooms:  classrooms,
		Assignments: assignments,
		Paths:       paths,
	}
}

func (s *DashboardService) GetUserDashboard(user *model.User) (*Dashboard, error) {
	if user.Role == model.Teacher {
		return s.teacher(user)
	}
	return s.student(user)
}

func (s *DashboardService) student(user *model.User) (*Dashboard, error) {
	results, err := s.Results.ListByStudent(user.ID)
	if err != nil {
		return nil, err
	}
	avg := "-"
	if len(results) > 0 {
		total := 0.0
		for _, r := range results {
			total += percent(r.Score, r.MaxScore)
		}
		avg = fmt.Sprintf("%.0f%%", total/float64(len(results)))
	}

	assignments, err := s.Assignments.ListForUser(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	pending := 0
	for _, a := range assignments {
		if a.MyStatus == model.AssignmentPending {
			pending++
		}
	}

	paths, err := s.Paths.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	daysDone := 0
	for _, p := range paths {
		for _, d := range p.Schedule {
			if d.Completed {
				daysDone++
			}
		}
	}

	return &Dashboard{
		Role: user.Role,
		Name: user.Name,
		Stats: []Stat{
			{Label: "Tests Taken", Value: fmt.Sprintf("%d", len(results))},
			{Label: "Avg Score", Value: avg},
			{Label: "Assignments", Value: fmt.Sprintf("%d Pending", pending)},
			{Label: "Study Days", Value: fmt.Sprintf("%d", daysDone)},
		},
		QuickActions: studentActions,
	}, nil
}

func (s *DashboardService) teacher(user *model.User) (*Dashboard, error) {
	classes, err := s.Classrooms.ListForUser(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	tests, err := s.Tests.ListByCreator(user.ID)
	if err != nil {
		return nil, err
	}
	live, reviews := 0, 0
	for _, t := range tests {
		if t.Status == model.TestLive {
			live++
		}
		results, err := s.Results.ListByTest(t.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			if r.Status == model.ResultAwaited {
				reviews++
			}
		}
	}

	return &Dashboard{
		Role: user.Role,
		Name: user.Name,
		Stats: []Stat{
			{Label: "Active Classes", Value: fmt.Sprintf("%d", len(classes))},
			{Label: "Live Tests", Value: fmt.Sprintf("%d Active", live)},
			{Label: "Pending Reviews", Value: fmt.Sprintf("%d", reviews)},
		},
		QuickActions: teacherActions,
	}, nil
}
