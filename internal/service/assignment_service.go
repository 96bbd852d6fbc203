package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"

	"github.com/pkg/errors"
)

const defaultDueIn = 7 * 24 * time.Hour

type CreateAssignmentRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	ClassroomID string               `json:"classroomId" binding:"required"`
	Type        model.AssignmentType `json:"type" binding:"required,oneof=AI MANUAL"`
	// Topic seeds AI questions; Questions are used as given for MANUAL.
	Topic     string     `json:"topic"`
	Count     int        `json:"count"`
	Questions []string   `json:"questions"`
	DueDate   *time.Time `json:"dueDate"`
}

// AssignmentView is an assignment as seen by one user.
type AssignmentView struct {
	model.Assignment
	MyStatus model.AssignmentStatus `json:"myStatus"`
}

type AssignmentService struct {
	Assignments repository.AssignmentStore
	Classrooms  *ClassroomService
	Tests       *TestService
	now         func() time.Time
}

func NewAssignmentService(assignments repository.AssignmentStore, classrooms *ClassroomService, tests *TestService) *AssignmentService {
	return &AssignmentService{Assignments: assignments, Classrooms: classrooms, Tests: tests, now: time.Now}
}

func (s *AssignmentService) Create(ctx context.Context, creatorID string, req CreateAssignmentRequest) (*model.Assignment, error) {
	class, err := s.Classrooms.Get(req.ClassroomID)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != creatorID {
		return nil, util.ErrPermissionDenied
	}

	questions := req.Questions
	description := strings.TrimSpace(req.Description)
	if req.Type == model.AssignmentAI {
		topic := req.Topic
		if topic == "" {
			topic = req.Title
		}
		count := req.Count
		if count <= 0 {
			count = 5
		}
		gen, err := s.Tests.Generator.Test(ctx, topic, model.Medium, count)
		if err != nil {
			return nil, err
		}
		questions = make([]string, 0, len(gen.Questions))
		for i, q := range gen.Questions {
			questions = append(questions, fmt.Sprintf("%d. %s", i+1, q.Text))
		}
		if description == "" {
			description = "AI Generated Questions"
		}
	} else if description == "" {
		description = "Manual Upload"
	}

	due := s.now().Add(defaultDueIn)
	if req.DueDate != nil {
		due = *req.DueDate
	}
	a := &model.Assignment{
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		ClassroomID: class.ID,
		CreatorID:   creatorID,
		DueDate:     due,
		Status:      model.AssignmentPending,
		Type:        req.Type,
		Questions:   questions,
		SubmittedBy: []string{},
	}
	if err := s.Assignments.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForUser returns assignments of every classroom the user belongs to.
func (s *AssignmentService) ListForUser(uid string, role model.UserRole) ([]AssignmentView, error) {
	ids, err := s.Classrooms.ClassroomIDs(uid, role)
	if err != nil {
		return nil, err
	}
	list, err := s.Assignments.ListByClassrooms(ids)
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(list))
	for _, a := range list {
		views = append(views, AssignmentView{Assignment: a, MyStatus: a.StatusFor(uid)})
	}
	return views, nil
}

func (s *AssignmentService) ListByClassroom(classroomID string) ([]model.Assignment, error) {
	return s.Assignments.ListByClassrooms([]string{classroomID})
}

// Submit marks the assignment done for a student of its classroom.
func (s *AssignmentService) Submit(studentID, id string) (*AssignmentView, error) {
	a, err := s.Assignments.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	class, err := s.Classrooms.Get(a.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !class.HasStudent(studentID) {
		return nil, util.ErrPermissionDenied
	}
	if a.StatusFor(studentID) != model.AssignmentSubmitted {
		a.SubmittedBy = append(a.SubmittedBy, studentID)
		if err := s.Assignments.Update(a); err != nil {
			return nil, err
		}
	}
	return &AssignmentView{Assignment: *a, MyStatus: model.AssignmentSubmitted}, nil
}
