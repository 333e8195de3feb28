package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/studenthub/apps/shared"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/view"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal   // mockable

	errHelp        = errors.New("help provided")
	errExit        = errors.New("exit")
	errNotLoggedIn = errors.New("please log in first")
	errAdminOnly   = errors.New("this command requires admin access")
	errNoInput     = errors.New("no input")
)

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

type commandLine struct {
	deps     *shared.Deps
	mgr      *session.Manager
	out      io.Writer
	lines    *bufio.Scanner
	commands map[string]command
}

func newCommandLine(deps *shared.Deps, mgr *session.Manager, in io.Reader, out io.Writer) *commandLine {
	cli := &commandLine{
		deps:  deps,
		mgr:   mgr,
		out:   out,
		lines: bufio.NewScanner(in),
	}
	cli.commands = map[string]command{
		"help":        {usage: "help", help: "show this help", run: cli.help},
		"exit":        {usage: "exit", help: "quit the console", run: func(context.Context, []string) error { return errExit }},
		"login":       {usage: "login admin USERNAME | login student ROLL_NUMBER", help: "log in; the password is prompted next", run: cli.login},
		"logout":      {usage: "logout", help: "log out", run: cli.logout},
		"whoami":      {usage: "whoami", help: "show the current identity", run: cli.whoami},
		"dashboard":   {usage: "dashboard", help: "show your dashboard", run: cli.dashboard},
		"students":    {usage: "students [TERM]", help: "list students matching TERM (admin)", run: cli.students},
		"student":     {usage: "student ROLL_NUMBER", help: "show a student with their results (admin)", run: cli.student},
		"add-student": {usage: "add-student -name NAME -email EMAIL -class CLASS [-password PASSWORD]", help: "register a student (admin)", run: cli.addStudent},
		"results":     {usage: "results [ROLL_NUMBER]", help: "list results", run: cli.results},
		"recent":      {usage: "recent [N]", help: "list the N most recent results (admin)", run: cli.recent},
		"add-result":  {usage: "add-result -roll ROLL_NUMBER -subject SUBJECT -score SCORE", help: "record a result (admin)", run: cli.addResult},
		"export":      {usage: "export FILE.xlsx", help: "export all results to a workbook (admin)", run: cli.export},
	}
	return cli
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	fmt.Fprintf(cli.out, format, args...)
}

// repl reads commands line by line until exit or end of input.
func (cli *commandLine) repl(ctx context.Context) error {
	if id := cli.mgr.Restore(ctx); id != nil {
		cli.printf("Welcome back, %s!\n", id.DisplayName())
	}
	for {
		cli.printf("%s> ", cli.prompt())
		if !cli.lines.Scan() {
			cli.printf("\n")
			return cli.lines.Err()
		}
		args, err := splitLine(cli.lines.Text())
		if err != nil {
			cli.printf("error: %s\n", err)
			continue
		}
		if err = cli.run(ctx, args); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			if !errors.Is(err, errHelp) {
				cli.printf("error: %s\n", formatError(err))
			}
		}
	}
}

func (cli *commandLine) prompt() string {
	if id := cli.mgr.Current(); id != nil {
		return "studenthub(" + session.Subject(id) + ")"
	}
	return "studenthub"
}

// run executes a single command. args[0] is the command name.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := cli.commands[args[0]]
	if !ok {
		if s := cli.suggest(args[0]); s != "" {
			return fmt.Errorf("unknown command %q, did you mean %q?", args[0], s)
		}
		return fmt.Errorf("unknown command %q, type \"help\" for usage", args[0])
	}
	return cmd.run(ctx, args[1:])
}

func (cli *commandLine) help(context.Context, []string) error {
	cli.printf("Usage:\n")
	for _, name := range cli.commandNames() {
		cmd := cli.commands[name]
		cli.printf("  %-72s - %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (cli *commandLine) commandNames() []string {
	names := make([]string, 0, len(cli.commands))
	for name := range cli.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the known command closest to name, if any is close enough.
func (cli *commandLine) suggest(name string) string {
	best, bestRatio := "", 0.6
	for _, candidate := range cli.commandNames() {
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(candidate, "")).Ratio()
		if ratio >= bestRatio {
			best, bestRatio = candidate, ratio
		}
	}
	return best
}

// newFlagSet returns a flag set reporting to the console instead of exiting.
func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	fs.Usage = func() {
		cli.printf("Usage: %s\n", cli.commands[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

func (cli *commandLine) parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// readPassword prompts without echo on a terminal, else reads the next input line.
func (cli *commandLine) readPassword() (string, error) {
	cli.printf("Enter password: ")
	fd := int(os.Stdin.Fd())
	if isTerminalFunc(fd) {
		pwd, err := readPasswordFunc(fd)
		cli.printf("\n")
		return string(pwd), err
	}
	if !cli.lines.Scan() {
		if err := cli.lines.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	return cli.lines.Text(), nil
}

func (cli *commandLine) route() view.View {
	return cli.deps.Router.Route(cli.mgr.Current())
}

func (cli *commandLine) adminView() (*view.AdminView, error) {
	switch v := cli.route().(type) {
	case *view.AdminView:
		return v, nil
	case *view.StudentView:
		return nil, errAdminOnly
	}
	return nil, errNotLoggedIn
}

// splitLine splits a command line on spaces, honouring double quotes.
func splitLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args, nil
}
