package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
)

func registerScheduleAPI(g *echo.Group, svc *schedule.Service) {
	g.GET("/schedule", func(ctx echo.Context) error {
		slots, err := svc.Week()
		if err != nil {
			return errors.Wrap(err, "fetching schedule")
		}
		if slots == nil {
			slots = []schedule.Slot{}
		}
		return ctx.JSON(http.StatusOK, slots)
	})
}
