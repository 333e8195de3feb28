package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/session"
)

type (
	AdminLoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	StudentLoginRequest struct {
		RollNumber string `json:"roll_number" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token    string         `json:"token"`
		Identity session.Record `json:"identity"`
	}
)

func (r *AdminLoginRequest) Validate(validate *validator.Validate) error {
	r.Username = core.CleanString(r.Username)
	return validate.Struct(r)
}

func (r *StudentLoginRequest) Validate(validate *validator.Validate) error {
	r.RollNumber = core.CleanString(r.RollNumber)
	return validate.Struct(r)
}

type sessionApi struct {
	conf     *core.Config
	auth     *session.Authenticator
	validate *validator.Validate
}

func registerSessionAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	conf *core.Config,
	auth *session.Authenticator,
	validate *validator.Validate,
) {
	api := sessionApi{conf: conf, auth: auth, validate: validate}

	sg := g.Group("/session")
	sg.POST("/admin", api.adminLogin)
	sg.POST("/student", api.studentLogin)
	sg.GET("", api.current, authed)
}

func (api *sessionApi) adminLogin(ctx echo.Context) error {
	var data AdminLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminLoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	admin, err := api.auth.AdminLogin(data.Username, data.Password)
	if err != nil {
		return err
	}
	return api.respondWithToken(ctx, admin)
}

func (api *sessionApi) studentLogin(ctx echo.Context) error {
	var data StudentLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentLoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.auth.StudentLogin(data.RollNumber, data.Password)
	if err != nil {
		return err
	}
	return api.respondWithToken(ctx, st)
}

func (api *sessionApi) current(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, session.NewRecord(id))
}

func (api *sessionApi) respondWithToken(ctx echo.Context, id session.Identity) error {
	token, err := GenerateToken(api.conf, id)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: session.NewRecord(id)})
}
