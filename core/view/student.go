package view

import (
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
)

// StudentView only reaches the ledger through a ScopedLedger bound to the student.
type StudentView struct {
	Student session.Student
	Ledger  *ScopedLedger
}

func (*StudentView) Name() string { return NameStudent }
func (*StudentView) view()        {}

// ScopedLedger is a read-only ledger pre-filtered to one roll number.
type ScopedLedger struct {
	studentID string
	results   *result.Service
}

func (l *ScopedLedger) StudentID() string { return l.studentID }

func (l *ScopedLedger) All() ([]Row, error) {
	entries, err := l.results.AllForStudent(l.studentID)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, newRow(e, ""))
	}
	return rows, nil
}

func (l *ScopedLedger) Summary() (result.Summary, error) {
	return l.results.SummaryFor(l.studentID)
}

// StudentDashboard is what a student sees after logging in.
type StudentDashboard struct {
	Student session.Student `json:"student"`
	Results []Row           `json:"results"`
	Summary result.Summary  `json:"summary"`
}

func (v *StudentView) Dashboard() (StudentDashboard, error) {
	rows, err := v.Ledger.All()
	if err != nil {
		return StudentDashboard{}, err
	}
	sum, err := v.Ledger.Summary()
	if err != nil {
		return StudentDashboard{}, err
	}
	return StudentDashboard{Student: v.Student, Results: rows, Summary: sum}, nil
}
