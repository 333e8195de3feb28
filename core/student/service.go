package student

import (
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		// CreateStudent assigns the next roll number to st and appends it.
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields, keeping insertion order.
		FilterStudents(filter QueryFilter) ([]Student, error)
		CountStudents() (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add registers a new Student. ns is expected to be validated.
func (svc *Service) Add(ns NewStudent) (Student, error) {
	st := Student{
		Name:     ns.Name,
		Email:    ns.Email,
		Class:    ns.Class,
		Password: ns.Password,
	}
	return svc.repo.CreateStudent(st)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// Search returns the students whose name, roll number or email contain term, ignoring case.
func (svc *Service) Search(term string) ([]Student, error) {
	return svc.repo.FilterStudents(QueryFilter{Search: term})
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(filter)
}

func (svc *Service) Count() (int, error) {
	return svc.repo.CountStudents()
}
