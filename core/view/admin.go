package view

import (
	"errors"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/student"
)

// AdminView has unrestricted access to the directory and the ledger.
type AdminView struct {
	Admin    session.Admin
	Students *student.Service
	Results  *result.Service
}

func (*AdminView) Name() string { return NameAdmin }
func (*AdminView) view()        {}

type Dashboard struct {
	TotalStudents int   `json:"total_students"`
	TotalResults  int   `json:"total_results"`
	AverageScore  int   `json:"average_score"`
	TopPerformers int   `json:"top_performers"` // results scoring at least grade.ExcellenceMark
	Recent        []Row `json:"recent"`
}

func (v *AdminView) Dashboard() (Dashboard, error) {
	count, err := v.Students.Count()
	if err != nil {
		return Dashboard{}, err
	}
	sum, err := v.Results.Overall()
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := v.RecentRows(RecentCount)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		TotalStudents: count,
		TotalResults:  sum.Count,
		AverageScore:  sum.Average,
		TopPerformers: sum.Excellent,
		Recent:        recent,
	}, nil
}

// RecentRows returns the n most recent results, most recent first.
func (v *AdminView) RecentRows(n int) ([]Row, error) {
	entries, err := v.Results.Recent(n)
	if err != nil {
		return nil, err
	}
	return v.Rows(entries)
}

// Rows decorates entries with the student names. Entries of unknown students are kept.
func (v *AdminView) Rows(entries []result.Entry) ([]Row, error) {
	names := make(map[string]string)
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.StudentID]
		if !ok {
			st, err := v.Students.GetByID(e.StudentID)
			switch {
			case err == nil:
				name = st.Name
			case errors.Is(err, student.ErrNotFound):
				name = unknownStudent
			default:
				return nil, err
			}
			names[e.StudentID] = name
		}
		rows = append(rows, newRow(e, name))
	}
	return rows, nil
}

// StudentReport is a student with their results.
type StudentReport struct {
	Student student.Student `json:"student"`
	Results []Row           `json:"results"`
	Summary result.Summary  `json:"summary"`
}

func (v *AdminView) Report(studentID string) (StudentReport, error) {
	st, err := v.Students.GetByID(studentID)
	if err != nil {
		return StudentReport{}, err
	}
	entries, err := v.Results.AllForStudent(st.ID)
	if err != nil {
		return StudentReport{}, err
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, newRow(e, st.Name))
	}
	return StudentReport{Student: st, Results: rows, Summary: result.Summarize(entries)}, nil
}
