// Package memstore keeps every store in process memory. It is the default
// backend and the one the service tests run against. Records are copied in
// and out so callers never share slices with the store.
package memstore

import (
	"slices"
	"sync"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

// table holds rows in insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), clone: clone}
}

func (t *table[T]) put(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

func (t *table[T]) has(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return true
}

// filter returns matching rows, newest first.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.rows[t.order[i]]
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) first(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if v := t.rows[id]; match(v) {
			return t.clone(v), true
		}
	}
	var zero T
	return zero, false
}

func stamp(b *model.UUIDBase) {
	b.EnsureID()
	b.Touch(time.Now())
}

// New returns a fresh set of empty stores.
func New() repository.Stores {
	users := &UserStore{t: newTable(cloneUser)}
	return repository.Stores{
		Tests:         &TestStore{t: newTable(cloneTest)},
		Results:       &ResultStore{t: newTable(cloneResult)},
		Users:         users,
		Classrooms:    &ClassroomStore{t: newTable(cloneClassroom)},
		Requests:      &FriendRequestStore{t: newTable(func(r model.FriendRequest) model.FriendRequest { return r })},
		Library:       &LibraryStore{t: newTable(cloneLibraryItem)},
		Assignments:   &AssignmentStore{t: newTable(cloneAssignment)},
		Paths:         &LearningPathStore{t: newTable(clonePath)},
		Notifications: &NotificationStore{t: newTable(func(n model.Notification) model.Notification { return n })},
	}
}

func cloneTest(t model.Test) model.Test {
	t.Questions = slices.Clone(t.Questions)
	for i := range t.Questions {
		t.Questions[i].Options = slices.Clone(t.Questions[i].Options)
	}
	return t
}

func cloneResult(r model.TestResult) model.TestResult {
	if r.Answers != nil {
		answers := make(map[int]string, len(r.Answers))
		for k, v := range r.Answers {
			answers[k] = v
		}
		r.Answers = answers
	}
	return r
}

func cloneUser(u model.User) model.User {
	u.Friends = slices.Clone(u.Friends)
	return u
}

func cloneClassroom(c model.Classroom) model.Classroom {
	c.StudentIDs = slices.Clone(c.StudentIDs)
	return c
}

func cloneLibraryItem(i model.LibraryItem) model.LibraryItem {
	i.Data = slices.Clone(i.Data)
	return i
}

func cloneAssignment(a model.Assignment) model.Assignment {
	a.Questions = slices.Clone(a.Questions)
	a.SubmittedBy = slices.Clone(a.SubmittedBy)
	return a
}

func clonePath(p model.LearningPath) model.LearningPath {
	p.Schedule = slices.Clone(p.Schedule)
	for i := range p.Schedule {
		p.Schedule[i].Activities = slices.Clone(p.Schedule[i].Activities)
	}
	if p.StartDate != nil {
		d := *p.StartDate
		p.StartDate = &d
	}
	return p
}
