package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/core/view"
)

var errInvalidInput = errors.New("invalid input")

func (cli *commandLine) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
}

func (cli *commandLine) printStudents(students []student.Student) error {
	w := cli.newTable()
	fmt.Fprintln(w, "ROLL NUMBER\tNAME\tEMAIL\tCLASS")
	for _, st := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.ID, st.Name, st.Email, st.Class)
	}
	return w.Flush()
}

func (cli *commandLine) printRows(rows []view.Row, withStudent bool) error {
	if len(rows) == 0 {
		cli.printf("No results found.\n")
		return nil
	}
	w := cli.newTable()
	if withStudent {
		fmt.Fprintln(w, "ROLL NUMBER\tNAME\tSUBJECT\tSCORE\tGRADE\tSTATUS")
	} else {
		fmt.Fprintln(w, "SUBJECT\tSCORE\tGRADE\tSTATUS")
	}
	for _, r := range rows {
		if withStudent {
			fmt.Fprintf(w, "%s\t%s\t", r.StudentID, r.StudentName)
		}
		fmt.Fprintf(w, "%s\t%d%%\t%s\t%s\n", r.Subject, r.Score, r.Grade, status(r.Passed))
	}
	return w.Flush()
}

func (cli *commandLine) printSummary(sum result.Summary) {
	cli.printf("Subjects: %d  Average: %d%%  Highest: %d%%  Passed: %d\n", sum.Count, sum.Average, sum.Highest, sum.Passed)
}

func status(passed bool) string {
	if passed {
		return "Passed"
	}
	return "Failed"
}

// translate turns validator errors into a core.ValidationError with readable messages.
func translate(err error, translator ut.Translator) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fields := core.TranslateErrors(vErrs, translator)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	flds := make([]core.FieldError, 0, len(names))
	for _, name := range names {
		flds = append(flds, core.FieldError{Field: name, Error: fields[name]})
	}
	return core.NewValidationError(errInvalidInput, flds...)
}

func formatError(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		msgs := make([]string, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			msgs = append(msgs, f.Field+": "+f.Error)
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}
