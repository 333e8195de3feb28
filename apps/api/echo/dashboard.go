package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/view"
)

func registerDashboardAPI(g *echo.Group, authed echo.MiddlewareFunc, router *view.Router) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		id, err := getContextIdentity(ctx)
		if err != nil {
			return err
		}

		switch v := router.Route(id).(type) {
		case *view.AdminView:
			dash, err := v.Dashboard()
			if err != nil {
				return errors.Wrap(err, "building admin dashboard")
			}
			return ctx.JSON(http.StatusOK, echo.Map{"view": v.Name(), "dashboard": dash})
		case *view.StudentView:
			dash, err := v.Dashboard()
			if err != nil {
				return errors.Wrap(err, "building student dashboard")
			}
			return ctx.JSON(http.StatusOK, echo.Map{"view": v.Name(), "dashboard": dash})
		}
		return errUnauthorized
	}, authed)
}
