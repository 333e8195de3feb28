package result

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/grade"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Entry is one recorded score. Entries are immutable once appended to the ledger.
type Entry struct {
	StudentID string `json:"student_id"`
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
}

func (e Entry) Grade() grade.Grade { return grade.Of(e.Score) }
func (e Entry) Passed() bool       { return grade.Passed(e.Score) }

// NewEntry contains information needed to record a new result.
type NewEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required,notblank"`
	Score     *int   `json:"score" validate:"required"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.StudentID = core.CleanString(ne.StudentID)
	ne.Subject = core.CleanString(ne.Subject)
	return validate.Struct(ne)
}

type QueryFilter struct {
	StudentID string `query:"student_id"`
}

// Summary holds the aggregates shown on dashboards.
type Summary struct {
	Count     int `json:"count"`
	Average   int `json:"average"`
	Highest   int `json:"highest"`
	Passed    int `json:"passed"`
	Excellent int `json:"excellent"`
}

// Summarize derives a Summary from entries. The average is rounded half up.
func Summarize(entries []Entry) Summary {
	var sum Summary
	if len(entries) == 0 {
		return sum
	}

	total := 0
	sum.Highest = entries[0].Score
	for _, e := range entries {
		total += e.Score
		if e.Score > sum.Highest {
			sum.Highest = e.Score
		}
		if grade.Passed(e.Score) {
			sum.Passed++
		}
		if grade.Excellent(e.Score) {
			sum.Excellent++
		}
	}
	sum.Count = len(entries)
	sum.Average = int(math.Floor(float64(total)/float64(sum.Count) + 0.5))
	return sum
}
