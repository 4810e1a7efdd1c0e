package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var contextObjectKey = "object"

// adminMiddleware must run after the auth middleware.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// objectMiddleware loads the record named by the `:id` path param into the context.
// Non-integer ids and missing records are both a 404.
func objectMiddleware[T any](get func(id int) (T, error), notFound error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil || id <= 0 {
				return errHttpNotFound
			}
			obj, err := get(id)
			if err != nil {
				if errors.Cause(err) == notFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "fetching object")
			}
			ctx.Set(contextObjectKey, obj)
			return next(ctx)
		}
	}
}

func getContextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(contextObjectKey).(T)
	if !ok {
		return obj, errObjectNotFoundInCtx
	}
	return obj, nil
}

// notFoundOr maps notFound to a 404 and wraps any other error.
func notFoundOr(err, notFound error, msg string) error {
	if errors.Cause(err) == notFound {
		return errHttpNotFound
	}
	return errors.Wrap(err, msg)
}
