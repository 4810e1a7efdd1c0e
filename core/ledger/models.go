package ledger

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var Types = []Type{TypeIncome, TypeExpense}

type Category string

const (
	CategoryDues     Category = "dues"
	CategoryDonation Category = "donation"
	CategoryEvent    Category = "event"
	CategorySupplies Category = "supplies"
	CategoryStudy    Category = "study"
	CategoryPrinting Category = "printing"
	CategoryOther    Category = "other"
)

var Categories = []Category{
	CategoryDues, CategoryDonation, CategoryEvent, CategorySupplies, CategoryStudy, CategoryPrinting, CategoryOther,
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusCompleted, StatusPending, StatusCancelled}

// Transaction is a single ledger entry. Amount is never negative: Type carries the direction.
type Transaction struct {
	ID          int       `json:"id"`
	Date        core.Date `json:"date"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Type        Type      `json:"type"`
	Amount      Money     `json:"amount"`
	Notes       string    `json:"notes"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// NewTransaction contains information needed to record a new Transaction.
type NewTransaction struct {
	Date        core.Date `json:"date" yaml:"date" validate:"required"`
	Description string    `json:"description" yaml:"description" validate:"required,max=255"`
	Category    Category  `json:"category" yaml:"category" validate:"required,txcategory"`
	Type        Type      `json:"type" yaml:"type" validate:"required,txtype"`
	Amount      *Money    `json:"amount" yaml:"amount" validate:"required,gte=0,lte=9999999999"`
	Notes       string    `json:"notes" yaml:"notes" validate:"max=1000"`
	Status      Status    `json:"status" yaml:"status" validate:"omitempty,txstatus"`
}

func (nt *NewTransaction) Validate(validate *validator.Validate) error {
	nt.Description = core.CleanString(nt.Description)
	nt.Notes = core.CleanString(nt.Notes)
	nt.Category = Category(core.CleanString(string(nt.Category), true /* lower */))
	nt.Type = Type(core.CleanString(string(nt.Type), true /* lower */))
	nt.Status = Status(core.CleanString(string(nt.Status), true /* lower */))
	return validate.Struct(nt)
}

// UpdateTransaction defines what information may be provided to modify an existing Transaction.
// Nil fields are left untouched.
type UpdateTransaction struct {
	Date        *core.Date `json:"date" validate:"omitempty"`
	Description *string    `json:"description" validate:"omitempty,max=255"`
	Category    *Category  `json:"category" validate:"omitempty,txcategory"`
	Type        *Type      `json:"type" validate:"omitempty,txtype"`
	Amount      *Money     `json:"amount" validate:"omitempty,gte=0,lte=9999999999"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
	Status      *Status    `json:"status" validate:"omitempty,txstatus"`
}

func (ut *UpdateTransaction) Validate(validate *validator.Validate) error {
	if ut.Description != nil {
		desc := core.CleanString(*ut.Description)
		if desc == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "description", Error: "this field cannot be blank"})
		}
		ut.Description = &desc
	}
	if ut.Notes != nil {
		notes := core.CleanString(*ut.Notes)
		ut.Notes = &notes
	}
	if ut.Category != nil {
		cat := Category(core.CleanString(string(*ut.Category), true /* lower */))
		ut.Category = &cat
	}
	if ut.Type != nil {
		typ := Type(core.CleanString(string(*ut.Type), true /* lower */))
		ut.Type = &typ
	}
	if ut.Status != nil {
		status := Status(core.CleanString(string(*ut.Status), true /* lower */))
		ut.Status = &status
	}
	if ut.Date != nil && ut.Date.IsZero() {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "this field cannot be null"})
	}
	return validate.Struct(ut)
}

// Apply copies every set field onto tx.
func (ut UpdateTransaction) Apply(tx *Transaction) {
	if ut.Date != nil {
		tx.Date = *ut.Date
	}
	if ut.Description != nil {
		tx.Description = *ut.Description
	}
	if ut.Category != nil {
		tx.Category = *ut.Category
	}
	if ut.Type != nil {
		tx.Type = *ut.Type
	}
	if ut.Amount != nil {
		tx.Amount = *ut.Amount
	}
	if ut.Notes != nil {
		tx.Notes = *ut.Notes
	}
	if ut.Status != nil {
		tx.Status = *ut.Status
	}
}

type QueryFilter struct {
	Search   string    `query:"search"`
	Type     Type      `query:"type"`
	Category Category  `query:"category"`
	Status   Status    `query:"status"`
	DateFrom core.Date `query:"from"`
	DateTo   core.Date `query:"to"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Type = Type(core.CleanString(string(qf.Type), true /* lower */))
	qf.Category = Category(core.CleanString(string(qf.Category), true /* lower */))
	qf.Status = Status(core.CleanString(string(qf.Status), true /* lower */))
}

// Match reports whether tx satisfies every set field of the filter.
// Search does a case-insensitive match on the description or the notes.
func (qf QueryFilter) Match(tx Transaction) bool {
	if qf.Type != "" && tx.Type != qf.Type {
		return false
	}
	if qf.Category != "" && tx.Category != qf.Category {
		return false
	}
	if qf.Status != "" && tx.Status != qf.Status {
		return false
	}
	if !qf.DateFrom.IsZero() && tx.Date.Before(qf.DateFrom) {
		return false
	}
	if !qf.DateTo.IsZero() && tx.Date.After(qf.DateTo) {
		return false
	}
	if qf.Search != "" && !(core.ContainsFold(tx.Description, qf.Search) || core.ContainsFold(tx.Notes, qf.Search)) {
		return false
	}
	return true
}
