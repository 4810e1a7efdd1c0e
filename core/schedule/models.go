package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

type Color string

const (
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorIndigo Color = "indigo"
	ColorRed    Color = "red"
)

var Colors = []Color{ColorPurple, ColorBlue, ColorGreen, ColorYellow, ColorPink, ColorOrange, ColorIndigo, ColorRed}

// Class is one cell of the weekly timetable.
type Class struct {
	Title string `json:"title" yaml:"title" validate:"required,max=100"`
	Room  string `json:"room" yaml:"room" validate:"max=50"`
	Color Color  `json:"color" yaml:"color" validate:"omitempty,schedcolor"`
}

// Slot is one row of the timetable: a time range and the class held on each weekday, if any.
type Slot struct {
	Time      string `json:"time" yaml:"time" validate:"required,max=32"`
	Monday    *Class `json:"monday" yaml:"monday"`
	Tuesday   *Class `json:"tuesday" yaml:"tuesday"`
	Wednesday *Class `json:"wednesday" yaml:"wednesday"`
	Thursday  *Class `json:"thursday" yaml:"thursday"`
	Friday    *Class `json:"friday" yaml:"friday"`
}

func (s *Slot) clean() {
	s.Time = core.CleanString(s.Time)
	for _, cls := range []*Class{s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday} {
		if cls != nil {
			cls.Title = core.CleanString(cls.Title)
			cls.Room = core.CleanString(cls.Room)
			cls.Color = Color(core.CleanString(string(cls.Color), true /* lower */))
		}
	}
}

// ReplaceSchedule holds a whole new timetable.
type ReplaceSchedule struct {
	Slots []Slot `json:"slots" validate:"required,min=1,max=12,dive"`
}

func (rs *ReplaceSchedule) Validate(validate *validator.Validate) error {
	for i := range rs.Slots {
		rs.Slots[i].clean()
	}
	return validate.Struct(rs)
}
