package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	orderingParam = "ordering"
	queryBinder   = new(echo.DefaultBinder)
)

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		return
	}
	ord.Orderings = core.ParseOrderings(val)
}

// bindQuery binds the query string into dst. A malformed value of one of dateParams
// is reported as a field error on that param.
func bindQuery(ctx echo.Context, dst interface{}, dateParams ...string) error {
	err := queryBinder.BindQueryParams(ctx, dst)
	if err == nil {
		return nil
	}

	var fldErrs []core.FieldError
	for _, name := range dateParams {
		val := strings.TrimSpace(ctx.QueryParam(name))
		if val == "" {
			continue
		}
		if _, dErr := core.ParseDate(val); dErr != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: name, Error: dErr.Error()})
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return errors.Wrap(err, "binding query params")
}
