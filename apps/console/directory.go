package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/core/view"
	"github.com/trezcool/studenthub/services/report"
)

func (cli *commandLine) students(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}
	students, err := v.Students.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(students) == 0 {
		cli.printf("No students found.\n")
		return nil
	}
	return cli.printStudents(students)
}

func (cli *commandLine) student(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		cli.printf("Usage: %s\n", cli.commands["student"].usage)
		return errHelp
	}
	rep, err := v.Report(args[0])
	if err != nil {
		return err
	}
	if err = cli.printStudents([]student.Student{rep.Student}); err != nil {
		return err
	}
	cli.printf("\n")
	cli.printSummary(rep.Summary)
	cli.printf("\n")
	return cli.printRows(rep.Results, false)
}

func (cli *commandLine) addStudent(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}

	fs := cli.newFlagSet("add-student")
	var data student.NewStudent
	fs.StringVar(&data.Name, "name", "", "The student's full name.")
	fs.StringVar(&data.Email, "email", "", "The student's email.")
	fs.StringVar(&data.Class, "class", "", "One of "+classValues()+".")
	fs.StringVar(&data.Password, "password", "", "The student's password. Prompted when omitted.")
	if err = cli.parseFlags(fs, args); err != nil {
		return err
	}
	if data.Password == "" {
		if data.Password, err = cli.readPassword(); err != nil {
			return err
		}
	}
	if err = data.Validate(cli.deps.Validate); err != nil {
		return translate(err, cli.deps.Translator)
	}

	st, err := v.Students.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	cli.printf("Added %s with roll number %s.\n", st.Name, st.ID)
	return nil
}

func (cli *commandLine) results(_ context.Context, args []string) error {
	switch v := cli.route().(type) {
	case *view.AdminView:
		var filter result.QueryFilter
		if len(args) > 0 {
			filter.StudentID = args[0]
		}
		entries, err := v.Results.Filter(filter)
		if err != nil {
			return err
		}
		rows, err := v.Rows(entries)
		if err != nil {
			return err
		}
		return cli.printRows(rows, true)
	case *view.StudentView:
		if len(args) > 0 && args[0] != v.Ledger.StudentID() {
			return errAdminOnly
		}
		rows, err := v.Ledger.All()
		if err != nil {
			return err
		}
		return cli.printRows(rows, false)
	}
	return errNotLoggedIn
}

func (cli *commandLine) recent(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}
	n := view.RecentCount
	if len(args) > 0 {
		if n, err = strconv.Atoi(args[0]); err != nil || n < 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
	}
	rows, err := v.RecentRows(n)
	if err != nil {
		return err
	}
	return cli.printRows(rows, true)
}

func (cli *commandLine) addResult(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}

	fs := cli.newFlagSet("add-result")
	var data result.NewEntry
	fs.StringVar(&data.StudentID, "roll", "", "The student's roll number.")
	fs.StringVar(&data.Subject, "subject", "", "The subject name.")
	score := fs.Int("score", 0, fmt.Sprintf("The score, from %d to %d.", result.MinScore, result.MaxScore))
	if err = cli.parseFlags(fs, args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "score" {
			data.Score = score
		}
	})
	if err = data.Validate(cli.deps.Validate); err != nil {
		return translate(err, cli.deps.Translator)
	}

	e, err := v.Results.Add(data)
	if err != nil {
		return err
	}
	cli.printf("Recorded %s %d%% (grade %s) for %s.\n", e.Subject, e.Score, e.Grade(), e.StudentID)
	return nil
}

func (cli *commandLine) export(_ context.Context, args []string) error {
	v, err := cli.adminView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		cli.printf("Usage: %s\n", cli.commands["export"].usage)
		return errHelp
	}

	students, err := v.Students.QueryAll()
	if err != nil {
		return err
	}
	entries, err := v.Results.QueryAll()
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err = report.Write(f, students, entries); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}
	cli.printf("Exported %d results to %s.\n", len(entries), args[0])
	return nil
}

func classValues() string {
	values := make([]string, 0, len(student.Classes))
	for _, c := range student.Classes {
		values = append(values, c.Value)
	}
	return strings.Join(values, ", ")
}
