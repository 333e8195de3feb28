package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/core/view"
)

type studentApi struct {
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, authed echo.MiddlewareFunc, router *view.Router, validate *validator.Validate) {
	api := studentApi{validate: validate}

	sg := g.Group("/students", authed, viewMiddleware(router, view.NameAdmin))
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
}

func (api *studentApi) query(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	var filter student.QueryFilter
	if err = ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	students, err := v.Students.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	var data student.NewStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	st, err := v.Students.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	rep, err := v.Report(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "building student report")
	}
	return ctx.JSON(http.StatusOK, rep)
}
