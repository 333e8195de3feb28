package echoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/view"
	"github.com/trezcool/studenthub/services/report"
)

type resultApi struct {
	validate *validator.Validate
}

func registerResultAPI(g *echo.Group, authed echo.MiddlewareFunc, router *view.Router, validate *validator.Validate) {
	api := resultApi{validate: validate}

	rg := g.Group("/results", authed, viewMiddleware(router, view.NameAdmin))
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/recent", api.recent)
	rg.GET("/export", api.export)

	mg := g.Group("/me", authed, viewMiddleware(router, view.NameStudent))
	mg.GET("/results", api.own)
}

func (api *resultApi) query(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	var filter result.QueryFilter
	if err = ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	entries, err := v.Results.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering results")
	}
	rows, err := v.Rows(entries)
	if err != nil {
		return errors.Wrap(err, "decorating results")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *resultApi) create(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	var data result.NewEntry
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	e, err := v.Results.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding result")
	}
	rows, err := v.Rows([]result.Entry{e})
	if err != nil {
		return errors.Wrap(err, "decorating result")
	}
	return ctx.JSON(http.StatusCreated, rows[0])
}

func (api *resultApi) recent(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	n := view.RecentCount
	if param := ctx.QueryParam("n"); param != "" {
		if n, err = strconv.Atoi(param); err != nil || n < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "n", Error: "must be a non-negative number"})
		}
	}

	rows, err := v.RecentRows(n)
	if err != nil {
		return errors.Wrap(err, "querying recent results")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *resultApi) export(ctx echo.Context) error {
	v, err := getAdminView(ctx)
	if err != nil {
		return err
	}
	students, err := v.Students.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	entries, err := v.Results.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying results")
	}

	f, err := report.Workbook(students, entries)
	if err != nil {
		return errors.Wrap(err, "building workbook")
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "writing workbook")
	}

	filename := fmt.Sprintf("results-%s.xlsx", time.Now().Format("20060102"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, report.ContentType, buf.Bytes())
}

type ownResults struct {
	Results []view.Row     `json:"results"`
	Summary result.Summary `json:"summary"`
}

func (api *resultApi) own(ctx echo.Context) error {
	v, err := getStudentView(ctx)
	if err != nil {
		return err
	}
	rows, err := v.Ledger.All()
	if err != nil {
		return errors.Wrap(err, "querying own results")
	}
	sum, err := v.Ledger.Summary()
	if err != nil {
		return errors.Wrap(err, "summarizing own results")
	}
	return ctx.JSON(http.StatusOK, ownResults{Results: rows, Summary: sum})
}
