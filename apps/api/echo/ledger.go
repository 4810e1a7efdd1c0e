package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
)

const maxMonthlyWindow = 36

type ledgerApi struct {
	svc      *ledger.Service
	validate *validator.Validate
}

func registerLedgerAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *ledger.Service, validate *validator.Validate) {
	api := ledgerApi{svc: svc, validate: validate}
	obj := objectMiddleware(svc.GetByID, ledger.ErrNotFound)

	tg := g.Group("/transactions")
	tg.GET("", api.query)
	tg.POST("", api.create, authed)
	tg.GET("/:id", api.retrieve, obj)
	tg.PUT("/:id", api.update, authed, obj)
	tg.DELETE("/:id", api.destroy, authed, obj)

	fg := g.Group("/finance")
	fg.GET("/summary", api.summary)
	fg.GET("/monthly", api.monthly)
	fg.GET("/breakdown", api.breakdown)
}

// Handlers

func (api *ledgerApi) query(ctx echo.Context) error {
	var filter ledger.QueryFilter
	if err := bindQuery(ctx, &filter, "from", "to"); err != nil {
		return err
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	txs, err := api.svc.Query(filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying transactions")
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	return ctx.JSON(http.StatusOK, txs)
}

func (api *ledgerApi) create(ctx echo.Context) error {
	var data ledger.NewTransaction
	if err := ctx.Bind(&data); err != nil {
		return badBody(err, "binding to NewTransaction")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tx, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating transaction")
	}
	return ctx.JSON(http.StatusCreated, tx)
}

func (api *ledgerApi) retrieve(ctx echo.Context) error {
	tx, err := getContextObject[ledger.Transaction](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, tx)
}

func (api *ledgerApi) update(ctx echo.Context) error {
	tx, err := getContextObject[ledger.Transaction](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data ledger.UpdateTransaction
	if err = ctx.Bind(&data); err != nil {
		return badBody(err, "binding to UpdateTransaction")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	tx, err = api.svc.Update(tx.ID, data)
	if err != nil {
		return notFoundOr(err, ledger.ErrNotFound, "updating transaction")
	}
	return ctx.JSON(http.StatusOK, tx)
}

func (api *ledgerApi) destroy(ctx echo.Context) error {
	tx, err := getContextObject[ledger.Transaction](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if err = api.svc.Delete(tx.ID); err != nil {
		return notFoundOr(err, ledger.ErrNotFound, "deleting transaction")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *ledgerApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary()
	if err != nil {
		return errors.Wrap(err, "computing summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *ledgerApi) monthly(ctx echo.Context) error {
	window := ledger.DefaultWindow
	if val := strings.TrimSpace(ctx.QueryParam("months")); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > maxMonthlyWindow {
			msg := "must be a number between 1 and " + strconv.Itoa(maxMonthlyWindow)
			return core.NewValidationError(nil, core.FieldError{Field: "months", Error: msg})
		}
		window = n
	}

	var ref core.Date
	if val := strings.TrimSpace(ctx.QueryParam("ref")); val != "" {
		d, err := core.ParseDate(val)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "ref", Error: err.Error()})
		}
		ref = d
	}

	series, err := api.svc.Monthly(ref.Time, window)
	if err != nil {
		return errors.Wrap(err, "computing monthly series")
	}
	return ctx.JSON(http.StatusOK, series)
}

func (api *ledgerApi) breakdown(ctx echo.Context) error {
	b, err := api.svc.Breakdown()
	if err != nil {
		return errors.Wrap(err, "computing breakdown")
	}
	return ctx.JSON(http.StatusOK, b)
}

// badBody turns amount and date decoding failures into field errors.
func badBody(err error, msg string) error {
	if herr, ok := err.(*echo.HTTPError); ok {
		switch herr.Internal {
		case ledger.ErrInvalidAmount:
			return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: herr.Internal.Error()})
		case core.ErrInvalidDate:
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: herr.Internal.Error()})
		}
	}
	return errors.Wrap(err, msg)
}
