// Package inmem provides in-memory repository implementations used by the
// service tests. They mirror the document-store gateway semantics: (nil, nil)
// lookups for absent records, atomic id sequences and stable list ordering.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

// TeacherRepository is an in-memory principal store.
type TeacherRepository struct {
	mu       sync.Mutex
	seq      int64
	teachers map[int64]*models.Teacher
}

// NewTeacherRepository creates an empty in-memory principal store.
func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{teachers: make(map[int64]*models.Teacher)}
}

// Add inserts a principal, assigning an id when missing.
func (r *TeacherRepository) Add(t *models.Teacher) *models.Teacher {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		r.seq++
		t.ID = r.seq
	}
	clone := *t
	r.teachers[clone.ID] = &clone
	return t
}

func (r *TeacherRepository) FindActiveByUsername(_ context.Context, username string) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Username == username && t.Active {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *TeacherRepository) FindByGroup(_ context.Context, group string) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Group == group && t.Role == models.RoleTeacher {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *TeacherRepository) CountActiveTeachers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, t := range r.teachers {
		if t.Role == models.RoleTeacher && t.Active {
			count++
		}
	}
	return count, nil
}

// StudentRepository is an in-memory student store.
type StudentRepository struct {
	mu       sync.Mutex
	seq      int64
	students map[int64]*models.Student

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise the storage-unavailable paths.
	FailWith error
}

// NewStudentRepository creates an empty in-memory student store.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{students: make(map[int64]*models.Student)}
}

func (r *StudentRepository) NextID(_ context.Context) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *StudentRepository) FindByID(_ context.Context, id int64) (*models.Student, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *StudentRepository) FindByIdentity(_ context.Context, name, lastName, group string) (*models.Student, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Name == name && s.LastName == lastName && s.Group == group {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *StudentRepository) ListAll(_ context.Context) ([]*models.Student, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.snapshot(func(*models.Student) bool { return true })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

func (r *StudentRepository) ListByGroup(_ context.Context, group string) ([]*models.Student, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.snapshot(func(s *models.Student) bool { return s.Group == group })
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *StudentRepository) snapshot(keep func(*models.Student) bool) []*models.Student {
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		if keep(s) {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out
}

func (r *StudentRepository) Insert(_ context.Context, student *models.Student) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *student
	r.students[clone.ID] = &clone
	return nil
}

func (r *StudentRepository) UpdateIdentityAndTrimester(
	_ context.Context,
	id int64,
	name, lastName, group string,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return 0, nil
	}
	s.Name = name
	s.LastName = lastName
	s.Group = group
	s.Grades.SetTrimester(trimester, grades)
	return 1, nil
}

func (r *StudentRepository) UpdateTrimester(
	_ context.Context,
	id int64,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return 0, nil
	}
	s.Grades.SetTrimester(trimester, grades)
	return 1, nil
}

func (r *StudentRepository) Delete(_ context.Context, id int64) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return 0, nil
	}
	delete(r.students, id)
	return 1, nil
}

func (r *StudentRepository) CountAll(_ context.Context) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r *StudentRepository) CountByGroups(_ context.Context, groups []string) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, s := range r.students {
		for _, g := range groups {
			if s.Group == g {
				count++
				break
			}
		}
	}
	return count, nil
}
