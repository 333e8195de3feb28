// Package view selects the surface presented to the current session identity.
package view

import (
	"github.com/trezcool/studenthub/core/grade"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/student"
)

const (
	NameLogin   = "login"
	NameAdmin   = "admin"
	NameStudent = "student"

	// RecentCount is the number of recent results shown on the admin dashboard.
	RecentCount = 5

	unknownStudent = "Unknown"
)

// View is one of LoginView, *AdminView or *StudentView.
type View interface {
	Name() string
	view()
}

type LoginView struct{}

func (LoginView) Name() string { return NameLogin }
func (LoginView) view()        {}

// Router has no state of its own; it only decides which View an identity gets.
type Router struct {
	students *student.Service
	results  *result.Service
}

func NewRouter(students *student.Service, results *result.Service) *Router {
	return &Router{students: students, results: results}
}

func (r *Router) Route(id session.Identity) View {
	switch id := id.(type) {
	case session.Admin:
		return &AdminView{Admin: id, Students: r.students, Results: r.results}
	case session.Student:
		return &StudentView{
			Student: id,
			Ledger:  &ScopedLedger{studentID: id.ID, results: r.results},
		}
	}
	return LoginView{}
}

// Row is a result entry decorated for display.
type Row struct {
	result.Entry
	StudentName string      `json:"student_name,omitempty"`
	Grade       grade.Grade `json:"grade"`
	Passed      bool        `json:"passed"`
}

func newRow(e result.Entry, name string) Row {
	return Row{Entry: e, StudentName: name, Grade: e.Grade(), Passed: e.Passed()}
}
