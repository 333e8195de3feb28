package result

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/grade"
	"github.com/trezcool/studenthub/core/student"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student roll number not found")
	ErrScoreOutOfRange = fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	ErrScoreRequired   = errors.New("score is required")
)

type (
	Repository interface {
		AppendResult(e Entry) (Entry, error)
		QueryAllResults() ([]Entry, error)
		// FilterResults keeps insertion order.
		FilterResults(filter QueryFilter) ([]Entry, error)
		// RecentResults returns the last n entries, most recent first.
		RecentResults(n int) ([]Entry, error)
	}

	// StudentFinder resolves roll numbers against the student directory.
	StudentFinder interface {
		GetByID(id string) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentFinder
		mailSvc  core.EmailService // optional
	}
)

// NewService returns a ledger Service. mailSvc may be nil to disable result notifications.
func NewService(repo Repository, students StudentFinder, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, students: students, mailSvc: mailSvc}
}

// Add appends a result after checking that the student exists and the score is in range.
// Rejected entries leave the ledger untouched.
func (svc *Service) Add(ne NewEntry) (Entry, error) {
	st, err := svc.students.GetByID(ne.StudentID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return Entry{}, core.NewValidationError(
				ErrStudentNotFound,
				core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()},
			)
		}
		return Entry{}, err
	}
	if ne.Score == nil {
		return Entry{}, core.NewValidationError(
			ErrScoreRequired,
			core.FieldError{Field: "score", Error: ErrScoreRequired.Error()},
		)
	}
	if *ne.Score < MinScore || *ne.Score > MaxScore {
		return Entry{}, core.NewValidationError(
			ErrScoreOutOfRange,
			core.FieldError{Field: "score", Error: ErrScoreOutOfRange.Error()},
		)
	}

	e, err := svc.repo.AppendResult(Entry{
		StudentID: ne.StudentID,
		Subject:   ne.Subject,
		Score:     *ne.Score,
	})
	if err != nil {
		return Entry{}, err
	}
	svc.notify(st, e)
	return e, nil
}

func (svc *Service) QueryAll() ([]Entry, error) {
	return svc.repo.QueryAllResults()
}

func (svc *Service) AllForStudent(studentID string) ([]Entry, error) {
	return svc.repo.FilterResults(QueryFilter{StudentID: studentID})
}

func (svc *Service) Filter(filter QueryFilter) ([]Entry, error) {
	if filter.StudentID == "" {
		return svc.repo.QueryAllResults()
	}
	return svc.repo.FilterResults(filter)
}

func (svc *Service) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	return svc.repo.RecentResults(n)
}

func (svc *Service) Overall() (Summary, error) {
	entries, err := svc.repo.QueryAllResults()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}

func (svc *Service) SummaryFor(studentID string) (Summary, error) {
	entries, err := svc.AllForStudent(studentID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}

// Notification is the template data of the "result_published" email.
type Notification struct {
	StudentName string
	RollNumber  string
	Subject     string
	Score       int
	Grade       grade.Grade
	Passed      bool
}

func (svc *Service) notify(st student.Student, e Entry) {
	if svc.mailSvc == nil || st.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: st.Name, Address: st.Email}},
		Subject:      "New result: " + e.Subject,
		TemplateName: "result_published",
		TemplateData: Notification{
			StudentName: st.Name,
			RollNumber:  st.ID,
			Subject:     e.Subject,
			Score:       e.Score,
			Grade:       e.Grade(),
			Passed:      e.Passed(),
		},
	})
}
