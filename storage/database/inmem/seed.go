package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
)

// Seed loads the demo directory (ST001..ST004) and their results.
func Seed(db *DB) error {
	students := NewStudentRepository(db)
	results := NewResultRepository(db)

	for _, st := range []student.Student{
		{Name: "Murari Kumar", Email: "murari@email.com", Class: student.Class12, Password: "murari123"},
		{Name: "Pradeep Singh", Email: "pradeep@email.com", Class: student.Class11, Password: "pradeep123"},
		{Name: "Pushpa Raj", Email: "pushpa@email.com", Class: student.Class12, Password: "pushpa123"},
		{Name: "Satyam Kumar", Email: "satyam@email.com", Class: student.Class10, Password: "satyam123"},
	} {
		if _, err := students.CreateStudent(st); err != nil {
			return errors.Wrap(err, "seeding students")
		}
	}

	for _, e := range []result.Entry{
		{StudentID: "ST001", Subject: "Mathematics", Score: 95},
		{StudentID: "ST001", Subject: "Physics", Score: 88},
		{StudentID: "ST002", Subject: "Chemistry", Score: 82},
		{StudentID: "ST002", Subject: "English", Score: 90},
		{StudentID: "ST003", Subject: "History", Score: 85},
	} {
		if _, err := results.AppendResult(e); err != nil {
			return errors.Wrap(err, "seeding results")
		}
	}
	return nil
}
