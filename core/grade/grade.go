// Package grade maps numeric scores to letter grades.
package grade

type Grade string

const (
	A Grade = "A"
	B Grade = "B"
	C Grade = "C"
	D Grade = "D"
	F Grade = "F"
)

const (
	// PassMark is the lowest passing score.
	PassMark = 60
	// ExcellenceMark is the lowest score counted as a top performance.
	ExcellenceMark = 90
)

var bands = []struct {
	min   int
	grade Grade
}{
	{ExcellenceMark, A},
	{80, B},
	{70, C},
	{PassMark, D},
}

// Of returns the letter grade of score. Any int is accepted; out of range scores
// fall into whatever band the thresholds place them in.
func Of(score int) Grade {
	for _, b := range bands {
		if score >= b.min {
			return b.grade
		}
	}
	return F
}

func Passed(score int) bool    { return score >= PassMark }
func Excellent(score int) bool { return score >= ExcellenceMark }

func (g Grade) String() string { return string(g) }
