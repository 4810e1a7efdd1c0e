package member

import (
	"github.com/go-playground/validator/v10"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

type Role string

const (
	RolePresident     Role = "president"
	RoleVicePresident Role = "vice_president"
	RoleSecretary     Role = "secretary"
	RoleTreasurer     Role = "treasurer"
	RoleMember        Role = "member"
)

var Roles = []Role{RolePresident, RoleVicePresident, RoleSecretary, RoleTreasurer, RoleMember}

// IsCore reports whether r is one of the class officer roles.
func (r Role) IsCore() bool {
	switch r {
	case RolePresident, RoleVicePresident, RoleSecretary, RoleTreasurer:
		return true
	}
	return false
}

type Member struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	PhotoURL  string `json:"photoUrl"`
}

// NewMember contains information needed to create a new Member.
type NewMember struct {
	Name      string `json:"name" yaml:"name" validate:"required,max=100"`
	StudentID string `json:"studentId" yaml:"studentId" validate:"required,max=32"`
	Email     string `json:"email" yaml:"email" validate:"omitempty,email"`
	Role      Role   `json:"role" yaml:"role" validate:"omitempty,memberrole"`
	PhotoURL  string `json:"photoUrl" yaml:"photoUrl" validate:"max=2048"`
}

// Clean trims every field and lowercases the email and the role.
func (nm *NewMember) Clean() {
	nm.Name = core.CleanString(nm.Name)
	nm.StudentID = core.CleanString(nm.StudentID)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Role = Role(core.CleanString(string(nm.Role), true /* lower */))
	nm.PhotoURL = core.CleanString(nm.PhotoURL)
}

func (nm *NewMember) Validate(validate *validator.Validate, svc *Service) error {
	nm.Clean()
	if err := validate.Struct(nm); err != nil {
		return err
	}
	return svc.CheckUniqueness(nm.StudentID)
}

// UpdateMember defines what information may be provided to modify an existing Member.
// Nil fields are left untouched.
type UpdateMember struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	StudentID *string `json:"studentId" validate:"omitempty,max=32"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *Role   `json:"role" validate:"omitempty,memberrole"`
	PhotoURL  *string `json:"photoUrl" validate:"omitempty,max=2048"`
}

func (um *UpdateMember) Validate(origMem Member, validate *validator.Validate, svc *Service) error {
	var fldErrs []core.FieldError
	if um.Name != nil {
		name := core.CleanString(*um.Name)
		if name == "" {
			fldErrs = append(fldErrs, core.FieldError{Field: "name", Error: "this field cannot be blank"})
		}
		um.Name = &name
	}
	if um.StudentID != nil {
		sid := core.CleanString(*um.StudentID)
		if sid == "" {
			fldErrs = append(fldErrs, core.FieldError{Field: "studentId", Error: "this field cannot be blank"})
		}
		um.StudentID = &sid
	}
	if um.Email != nil {
		email := core.CleanString(*um.Email, true /* lower */)
		um.Email = &email
	}
	if um.Role != nil {
		role := Role(core.CleanString(string(*um.Role), true /* lower */))
		um.Role = &role
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}

	if err := validate.Struct(um); err != nil {
		return err
	}
	if um.StudentID != nil {
		return svc.CheckUniqueness(*um.StudentID, origMem.ID)
	}
	return nil
}

// Apply copies every set field onto m.
func (um UpdateMember) Apply(m *Member) {
	if um.Name != nil {
		m.Name = *um.Name
	}
	if um.StudentID != nil {
		m.StudentID = *um.StudentID
	}
	if um.Email != nil {
		m.Email = *um.Email
	}
	if um.Role != nil {
		m.Role = *um.Role
	}
	if um.PhotoURL != nil {
		m.PhotoURL = *um.PhotoURL
	}
}

type QueryFilter struct {
	Search string `query:"search"`
	Role   Role   `query:"role"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = Role(core.CleanString(string(qf.Role), true /* lower */))
}

// Match reports whether m satisfies the filter.
// Search does a case-insensitive match on the name, the student id or the email.
func (qf QueryFilter) Match(m Member) bool {
	if qf.Role != "" && m.Role != qf.Role {
		return false
	}
	if qf.Search != "" &&
		!(core.ContainsFold(m.Name, qf.Search) || core.ContainsFold(m.StudentID, qf.Search) || core.ContainsFold(m.Email, qf.Search)) {
		return false
	}
	return true
}
