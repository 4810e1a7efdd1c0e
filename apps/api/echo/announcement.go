package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
)

type announcementApi struct {
	svc      *announcement.Service
	validate *validator.Validate
}

func registerAnnouncementAPI(
	g *echo.Group,
	authed, admin echo.MiddlewareFunc,
	svc *announcement.Service,
	validate *validator.Validate,
) {
	api := announcementApi{svc: svc, validate: validate}
	obj := objectMiddleware(svc.GetByID, announcement.ErrNotFound)

	ag := g.Group("/announcements")
	ag.GET("", api.query)
	ag.POST("", api.create, authed, admin)
	ag.GET("/:id", api.retrieve, obj)
	ag.PUT("/:id", api.update, authed, admin, obj)
	ag.DELETE("/:id", api.destroy, authed, admin, obj)
}

// Handlers

func (api *announcementApi) query(ctx echo.Context) error {
	var filter announcement.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	anns, err := api.svc.Query(filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if anns == nil {
		anns = []announcement.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) create(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	ann, err := api.svc.Create(data, claims.Username)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, ann)
}

func (api *announcementApi) retrieve(ctx echo.Context) error {
	ann, err := getContextObject[announcement.Announcement](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) update(ctx echo.Context) error {
	ann, err := getContextObject[announcement.Announcement](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data announcement.UpdateAnnouncement
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAnnouncement")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	ann, err = api.svc.Update(ann.ID, data)
	if err != nil {
		return notFoundOr(err, announcement.ErrNotFound, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	ann, err := getContextObject[announcement.Announcement](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if err = api.svc.Delete(ann.ID); err != nil {
		return notFoundOr(err, announcement.ErrNotFound, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
