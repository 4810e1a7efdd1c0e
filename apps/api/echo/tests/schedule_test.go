package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
)

func TestSchedule(t *testing.T) {
	app := setup(t)

	app.run(t, httpTest{
		name:     "empty",
		method:   http.MethodGet,
		path:     "/api/schedule",
		wantCode: http.StatusOK,
		wantData: marchallList(t),
	})

	slots := []schedule.Slot{
		{
			Time:     "08:00 - 09:40",
			Monday:   &schedule.Class{Title: "Cryptography", Room: "R301", Color: schedule.ColorPurple},
			Thursday: &schedule.Class{Title: "Number Theory", Room: "R204", Color: schedule.ColorBlue},
		},
		{
			Time:   "10:00 - 11:40",
			Friday: &schedule.Class{Title: "Networks", Room: "Lab 2", Color: schedule.ColorGreen},
		},
	}
	_, err := app.ScheduleSvc.Replace(schedule.ReplaceSchedule{Slots: slots})
	require.NoError(t, err)

	app.run(t, httpTest{
		name:     "week",
		method:   http.MethodGet,
		path:     "/api/schedule",
		wantCode: http.StatusOK,
		wantData: marchallObj(t, slots),
	})
}
