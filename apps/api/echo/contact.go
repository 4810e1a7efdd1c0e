package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core/contact"
)

type contactApi struct {
	svc      *contact.Service
	validate *validator.Validate
}

func registerContactAPI(
	g *echo.Group,
	authed, admin echo.MiddlewareFunc,
	svc *contact.Service,
	validate *validator.Validate,
) {
	api := contactApi{svc: svc, validate: validate}

	cg := g.Group("/contact-messages")
	cg.GET("", api.query, authed, admin)
	cg.POST("", api.create)
}

func (api *contactApi) query(ctx echo.Context) error {
	msgs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying contact messages")
	}
	if msgs == nil {
		msgs = []contact.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *contactApi) create(ctx echo.Context) error {
	var data contact.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	msg, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating contact message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}
