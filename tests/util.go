package testutil

import (
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/storage/database/inmem"
)

// PrepareDB opens an empty in-memory DB, optionally seeded with the demo data.
func PrepareDB(t *testing.T, seed ...bool) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if len(seed) > 0 && seed[0] {
		if err = inmemdb.Seed(db); err != nil {
			t.Fatalf("PrepareDB() failed: %v", err)
		}
	}
	return db
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, translator
}

func CreateStudent(t *testing.T, repo student.Repository, name, email, class, pwd string) student.Student {
	st, err := repo.CreateStudent(student.Student{
		Name:     name,
		Email:    email,
		Class:    class,
		Password: pwd,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func AddResult(t *testing.T, repo result.Repository, studentID, subject string, score int) result.Entry {
	e, err := repo.AppendResult(result.Entry{StudentID: studentID, Subject: subject, Score: score})
	if err != nil {
		t.Fatalf("AddResult() failed: %v", err)
	}
	return e
}
