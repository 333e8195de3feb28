package main

import (
	"context"
	"fmt"

	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/view"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		cli.printf("Usage: %s\n", cli.commands["login"].usage)
		return errHelp
	}
	kind, subject := args[0], args[1]
	if kind != string(session.KindAdmin) && kind != string(session.KindStudent) {
		return fmt.Errorf("cannot log in as %q: expected admin or student", kind)
	}

	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}

	var id session.Identity
	if kind == string(session.KindAdmin) {
		id, err = cli.mgr.LoginAsAdmin(ctx, subject, pwd)
	} else {
		id, err = cli.mgr.LoginAsStudent(ctx, subject, pwd)
	}
	if err != nil {
		return err
	}
	cli.printf("Welcome, %s!\n", id.DisplayName())
	return nil
}

func (cli *commandLine) logout(ctx context.Context, _ []string) error {
	if !cli.mgr.IsAuthenticated() {
		return errNotLoggedIn
	}
	cli.mgr.Logout(ctx)
	cli.printf("Logged out.\n")
	return nil
}

func (cli *commandLine) whoami(context.Context, []string) error {
	switch id := cli.mgr.Current().(type) {
	case session.Admin:
		cli.printf("%s (admin %s)\n", id.Name, id.Username)
	case session.Student:
		cli.printf("%s (%s, class %s)\n", id.Name, id.ID, id.Class)
	default:
		cli.printf("not logged in\n")
	}
	return nil
}

func (cli *commandLine) dashboard(context.Context, []string) error {
	switch v := cli.route().(type) {
	case *view.AdminView:
		dash, err := v.Dashboard()
		if err != nil {
			return err
		}
		cli.printf("Admin dashboard of %s\n\n", v.Admin.Name)
		cli.printf("Total students:  %d\n", dash.TotalStudents)
		cli.printf("Total results:   %d\n", dash.TotalResults)
		cli.printf("Average score:   %d%%\n", dash.AverageScore)
		cli.printf("Top performers:  %d\n\n", dash.TopPerformers)
		cli.printf("Recent results:\n")
		return cli.printRows(dash.Recent, true)
	case *view.StudentView:
		dash, err := v.Dashboard()
		if err != nil {
			return err
		}
		cli.printf("%s (%s)\n\n", dash.Student.Name, dash.Student.ID)
		cli.printSummary(dash.Summary)
		cli.printf("\n")
		return cli.printRows(dash.Results, false)
	}
	return errNotLoggedIn
}
