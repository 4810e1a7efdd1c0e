package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	photosvc "github.com/ardiann-eng/CryptgenFix122/services/photo"
)

var photoField = "photo"

type memberApi struct {
	svc          *member.Service
	photoSvc     *photosvc.Service
	maxPhotoSize int64
	validate     *validator.Validate
	logger       core.Logger
}

func registerMemberAPI(
	g *echo.Group,
	authed, admin echo.MiddlewareFunc,
	svc *member.Service,
	photoSvc *photosvc.Service,
	maxPhotoSize int64,
	validate *validator.Validate,
	logger core.Logger,
) {
	api := memberApi{
		svc:          svc,
		photoSvc:     photoSvc,
		maxPhotoSize: maxPhotoSize,
		validate:     validate,
		logger:       logger,
	}
	obj := objectMiddleware(svc.GetByID, member.ErrNotFound)

	mg := g.Group("/members")
	mg.GET("", api.query)
	mg.POST("", api.create, authed, admin)
	mg.GET("/:id", api.retrieve, obj)
	mg.PUT("/:id", api.update, authed, admin, obj)
	mg.DELETE("/:id", api.destroy, authed, admin, obj)
	if photoSvc != nil {
		mg.POST("/:id/photo", api.uploadPhoto, authed, admin, obj)
	}
}

// Handlers

func (api *memberApi) query(ctx echo.Context) error {
	var filter member.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	filter.Clean()

	members, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	mem, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating member")
	}
	return ctx.JSON(http.StatusCreated, mem)
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	mem, err := getContextObject[member.Member](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, mem)
}

func (api *memberApi) update(ctx echo.Context) error {
	mem, err := getContextObject[member.Member](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data member.UpdateMember
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}
	if err = data.Validate(mem, api.validate, api.svc); err != nil {
		return err
	}

	mem, err = api.svc.Update(mem.ID, data)
	if err != nil {
		return notFoundOr(err, member.ErrNotFound, "updating member")
	}
	return ctx.JSON(http.StatusOK, mem)
}

func (api *memberApi) destroy(ctx echo.Context) error {
	mem, err := getContextObject[member.Member](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if err = api.svc.Delete(mem.ID); err != nil {
		return notFoundOr(err, member.ErrNotFound, "deleting member")
	}
	api.removePhoto(mem.PhotoURL, mem.ID)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) uploadPhoto(ctx echo.Context) error {
	mem, err := getContextObject[member.Member](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	fh, err := ctx.FormFile(photoField)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: photoField, Error: "this field is required"})
	}
	if api.maxPhotoSize > 0 && fh.Size > api.maxPhotoSize {
		msg := fmt.Sprintf("the file must not be larger than %d bytes", api.maxPhotoSize)
		return core.NewValidationError(nil, core.FieldError{Field: photoField, Error: msg})
	}
	if err = photosvc.CheckFilename(fh.Filename); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: photoField, Error: err.Error()})
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	url, err := api.photoSvc.Save(src, fh.Filename)
	if err != nil {
		if errors.Cause(err) == photosvc.ErrInvalidImage {
			return core.NewValidationError(nil, core.FieldError{Field: photoField, Error: err.Error()})
		}
		return errors.Wrap(err, "saving photo")
	}

	old, err := api.svc.SetPhoto(mem.ID, url)
	if err != nil {
		api.removePhoto(url, mem.ID)
		return notFoundOr(err, member.ErrNotFound, "setting member photo")
	}
	api.removePhoto(old.PhotoURL, mem.ID)

	mem.PhotoURL = url
	return ctx.JSON(http.StatusOK, mem)
}

// removePhoto deletes the file behind url unless a member other than ownerID still shows it.
// Failures are only logged: the member record is already up to date.
func (api *memberApi) removePhoto(url string, ownerID int) {
	if url == "" || api.photoSvc == nil {
		return
	}
	inUse, err := api.svc.PhotoInUse(url, ownerID)
	if err != nil {
		api.logger.Error("checking photo usage", err)
		return
	}
	if inUse {
		return
	}
	if err = api.photoSvc.Remove(url); err != nil {
		api.logger.Error("removing photo", err)
	}
}
