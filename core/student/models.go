package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studenthub/core"
)

// Classes
const (
	Class10 = "10th"
	Class11 = "11th"
	Class12 = "12th"
)

var Classes = []Class{
	{Name: "10th Grade", Value: Class10},
	{Name: "11th Grade", Value: Class11},
	{Name: "12th Grade", Value: Class12},
}

type Class struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func IsClass(value string) bool {
	for _, c := range Classes {
		if c.Value == value {
			return true
		}
	}
	return false
}

type Student struct {
	ID       string `json:"id"` // roll number
	Name     string `json:"name"`
	Email    string `json:"email"`
	Class    string `json:"class"`
	Password string `json:"-"`
}

func (s Student) CheckPassword(pwd string) bool {
	return s.Password == pwd
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email"`
	Class    string `json:"class" validate:"required,class"`
	Password string `json:"password" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.Class = core.CleanString(ns.Class)
	return validate.Struct(ns)
}

type QueryFilter struct {
	// Search does a case-insensitive match on one of Student.Name, Student.ID or Student.Email.
	Search string `query:"search"`
	Class  string `query:"class"`
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Class == ""
}
