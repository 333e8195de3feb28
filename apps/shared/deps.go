// Package shared wires the services used by the studenthub applications.
package shared

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/core/view"
	"github.com/trezcool/studenthub/services/email"
	"github.com/trezcool/studenthub/storage/database/inmem"
	"github.com/trezcool/studenthub/storage/session/filestore"
	"github.com/trezcool/studenthub/storage/session/redisstore"
)

type Deps struct {
	Conf       *core.Config
	Logger     core.Logger
	DB         *inmemdb.DB
	Validate   *validator.Validate
	Translator ut.Translator
	StudentSvc *student.Service
	ResultSvc  *result.Service
	Mail       core.EmailService
	Auth       *session.Authenticator
	Router     *view.Router
}

// NewDeps opens the in-memory directory and ledger, seeded with the demo data when conf.Seed is set.
// mailOpts apply to the console email service used in debug mode.
func NewDeps(conf *core.Config, logger core.Logger, mailOpts ...emailsvc.ConsoleOption) (*Deps, error) {
	db, err := inmemdb.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Seed {
		if err = inmemdb.Seed(db); err != nil {
			return nil, errors.Wrap(err, "seeding database")
		}
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	stSvc := student.NewService(inmemdb.NewStudentRepository(db))
	mailSvc := NewEmailService(conf, logger, mailOpts...)
	resSvc := result.NewService(inmemdb.NewResultRepository(db), stSvc, mailSvc)

	return &Deps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		Validate:   validate,
		Translator: translator,
		StudentSvc: stSvc,
		ResultSvc:  resSvc,
		Mail:       mailSvc,
		Auth: session.NewAuthenticator(
			session.AdminAccount{Username: conf.Admin.Username, Password: conf.Admin.Password, Name: conf.Admin.Name},
			stSvc,
		),
		Router: view.NewRouter(stSvc, resSvc),
	}, nil
}

// NewEmailService returns nil when result notifications are disabled.
func NewEmailService(conf *core.Config, logger core.Logger, consoleOpts ...emailsvc.ConsoleOption) core.EmailService {
	if !conf.NotifyStudents {
		return nil
	}
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, consoleOpts...)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// WaitMail blocks until the notifications already handed to the email service are sent.
func (d *Deps) WaitMail() {
	if w, ok := d.Mail.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// NewSessionStore builds the configured session.Store. The returned func releases it.
func NewSessionStore(ctx context.Context, conf *core.Config) (session.Store, func() error, error) {
	noop := func() error { return nil }

	switch conf.Session.Store {
	case "", "file":
		return filestore.New(conf.Session.Dir, conf.Session.Key), noop, nil
	case "memory":
		return session.NewMemoryStore(), noop, nil
	case "redis":
		client, err := redisstore.NewClient(ctx, conf.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.New(client, conf.Session.Key, conf.Session.TTL), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", conf.Session.Store)
}
