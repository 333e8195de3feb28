package inmemdb

import (
	"strings"

	"github.com/trezcool/studenthub/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, len(repo.db.rows))
	copy(students, repo.db.rows)
	return students
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	st.ID = student.NextRollNumber(repo.db.rows)
	repo.db.index[st.ID] = len(repo.db.rows)
	repo.db.rows = append(repo.db.rows, st)
	return st, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i, ok := repo.db.index[id]; ok {
		return repo.db.rows[i], nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := repo.query()

	// students with search keyword matching any Name, ID or Email ?
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		filtered := make([]student.Student, 0, len(students))
		for _, s := range students {
			if strings.Contains(strings.ToLower(s.Name), search) ||
				strings.Contains(strings.ToLower(s.ID), search) ||
				strings.Contains(strings.ToLower(s.Email), search) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}
	if filter.Class != "" {
		filtered := make([]student.Student, 0, len(students))
		for _, s := range students {
			if s.Class == filter.Class {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}

	return students, nil
}

func (repo *studentRepository) CountStudents() (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.rows), nil
}
