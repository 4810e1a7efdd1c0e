package announcement

import (
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

type Category string

const (
	CategoryImportant  Category = "Important"
	CategoryAssignment Category = "Assignment"
	CategoryEvent      Category = "Event"
	CategoryLecture    Category = "Lecture"
	CategoryGeneral    Category = "General"
)

var Categories = []Category{CategoryImportant, CategoryAssignment, CategoryEvent, CategoryLecture, CategoryGeneral}

type Announcement struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category Category  `json:"category"`
	Date     core.Date `json:"date"`
	PostedBy string    `json:"postedBy"`
}

// NewAnnouncement contains information needed to publish a new Announcement.
// Date defaults to today and PostedBy to the publishing user.
type NewAnnouncement struct {
	Title    string    `json:"title" yaml:"title" validate:"required,max=200"`
	Content  string    `json:"content" yaml:"content" validate:"required"`
	Category Category  `json:"category" yaml:"category" validate:"required,anncategory"`
	Date     core.Date `json:"date" yaml:"date" validate:"omitempty"`
	PostedBy string    `json:"postedBy" yaml:"postedBy" validate:"max=100"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Content = core.CleanString(na.Content)
	na.Category = Category(core.CleanString(string(na.Category)))
	na.PostedBy = core.CleanString(na.PostedBy)
	return validate.Struct(na)
}

// UpdateAnnouncement defines what information may be provided to modify an existing Announcement.
// Nil fields are left untouched.
type UpdateAnnouncement struct {
	Title    *string    `json:"title" validate:"omitempty,max=200"`
	Content  *string    `json:"content" validate:"omitempty"`
	Category *Category  `json:"category" validate:"omitempty,anncategory"`
	Date     *core.Date `json:"date" validate:"omitempty"`
	PostedBy *string    `json:"postedBy" validate:"omitempty,max=100"`
}

func (ua *UpdateAnnouncement) Validate(validate *validator.Validate) error {
	var fldErrs []core.FieldError
	if ua.Title != nil {
		title := core.CleanString(*ua.Title)
		if title == "" {
			fldErrs = append(fldErrs, core.FieldError{Field: "title", Error: "this field cannot be blank"})
		}
		ua.Title = &title
	}
	if ua.Content != nil {
		content := core.CleanString(*ua.Content)
		if content == "" {
			fldErrs = append(fldErrs, core.FieldError{Field: "content", Error: "this field cannot be blank"})
		}
		ua.Content = &content
	}
	if ua.Category != nil {
		cat := Category(core.CleanString(string(*ua.Category)))
		ua.Category = &cat
	}
	if ua.Date != nil && ua.Date.IsZero() {
		fldErrs = append(fldErrs, core.FieldError{Field: "date", Error: "this field cannot be null"})
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return validate.Struct(ua)
}

// Apply copies every set field onto a.
func (ua UpdateAnnouncement) Apply(a *Announcement) {
	if ua.Title != nil {
		a.Title = *ua.Title
	}
	if ua.Content != nil {
		a.Content = *ua.Content
	}
	if ua.Category != nil {
		a.Category = *ua.Category
	}
	if ua.Date != nil {
		a.Date = *ua.Date
	}
	if ua.PostedBy != nil {
		a.PostedBy = *ua.PostedBy
	}
}

type QueryFilter struct {
	Search   string   `query:"search"`
	Category Category `query:"category"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = Category(core.CleanString(string(qf.Category)))
}

// Match reports whether a satisfies the filter. Search looks into the title and the content.
func (qf QueryFilter) Match(a Announcement) bool {
	if qf.Category != "" && a.Category != qf.Category {
		return false
	}
	if qf.Search != "" && !(core.ContainsFold(a.Title, qf.Search) || core.ContainsFold(a.Content, qf.Search)) {
		return false
	}
	return true
}
