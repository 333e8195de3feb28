package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/studenthub/apps/shared"
	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/services/email"
	"github.com/trezcool/studenthub/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "CONSOLE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// printed mail goes to stderr before the command's own output, so it never lands in the prompt
	deps, err := shared.NewDeps(conf, logger, emailsvc.WithOutput(os.Stderr), emailsvc.Synchronous())
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up dependencies: %v", err), err)
	}
	defer deps.WaitMail()

	ctx := context.Background()
	store, release, err := shared.NewSessionStore(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up session store: %v", err), err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Error(fmt.Sprintf("releasing session store: %v", err), err)
		}
	}()

	cli := newCommandLine(deps, session.NewManager(deps.Auth, store, logger), os.Stdin, os.Stdout)
	fmt.Printf("%s console. Type \"help\" for usage.\n", conf.AppName)
	if err = cli.repl(ctx); err != nil {
		logger.Error(fmt.Sprintf("reading input: %v", err), err)
	}
}
