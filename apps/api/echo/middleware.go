package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/studenthub/core/view"
)

const contextViewKey = "view"

// viewMiddleware routes the context identity and only lets the request through
// when the resulting view is the wanted one.
func viewMiddleware(router *view.Router, want string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := getContextIdentity(ctx)
			if err != nil {
				return err
			}
			v := router.Route(id)
			if v.Name() != want {
				return errForbidden
			}
			ctx.Set(contextViewKey, v)
			return next(ctx)
		}
	}
}

func getAdminView(ctx echo.Context) (*view.AdminView, error) {
	if v, ok := ctx.Get(contextViewKey).(*view.AdminView); ok {
		return v, nil
	}
	return nil, errForbidden
}

func getStudentView(ctx echo.Context) (*view.StudentView, error) {
	if v, ok := ctx.Get(contextViewKey).(*view.StudentView); ok {
		return v, nil
	}
	return nil, errForbidden
}
