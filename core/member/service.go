package member

import (
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	// errors
	ErrNotFound        = errors.New("member not found")
	ErrStudentIDExists = errors.New("a member with this student id already exists")
)

type (
	Repository interface {
		CreateMember(m Member) (Member, error)
		QueryAllMembers() ([]Member, error)
		// FilterMembers applies AND operation on available QueryFilter fields.
		FilterMembers(filter QueryFilter) ([]Member, error)
		GetMemberByID(id int) (Member, error)
		GetMemberByStudentID(studentID string) (Member, error)
		UpdateMember(id int, um UpdateMember) (Member, error)
		DeleteMember(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckUniqueness fails with a ValidationError on `studentId` when another member already has that student id.
func (svc *Service) CheckUniqueness(studentID string, excludedIDs ...int) error {
	m, err := svc.repo.GetMemberByStudentID(studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil
		}
		return errors.Wrap(err, "finding member by student id")
	}
	for _, id := range excludedIDs {
		if m.ID == id {
			return nil
		}
	}
	return core.NewValidationError(
		ErrStudentIDExists,
		core.FieldError{Field: "studentId", Error: ErrStudentIDExists.Error()},
	)
}

func (svc *Service) Create(nm NewMember) (Member, error) {
	m := Member{
		Name:      nm.Name,
		StudentID: nm.StudentID,
		Email:     nm.Email,
		Role:      nm.Role,
		PhotoURL:  nm.PhotoURL,
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	return svc.repo.CreateMember(m)
}

func (svc *Service) QueryAll() ([]Member, error) {
	return svc.repo.QueryAllMembers()
}

func (svc *Service) Filter(filter QueryFilter) ([]Member, error) {
	return svc.repo.FilterMembers(filter)
}

func (svc *Service) GetByID(id int) (Member, error) {
	return svc.repo.GetMemberByID(id)
}

func (svc *Service) GetByStudentID(studentID string) (Member, error) {
	return svc.repo.GetMemberByStudentID(core.CleanString(studentID))
}

func (svc *Service) Update(id int, um UpdateMember) (Member, error) {
	return svc.repo.UpdateMember(id, um)
}

// SetPhoto stores the new photo url and returns the member as it was before the change.
func (svc *Service) SetPhoto(id int, photoURL string) (Member, error) {
	old, err := svc.repo.GetMemberByID(id)
	if err != nil {
		return Member{}, err
	}
	if _, err := svc.repo.UpdateMember(id, UpdateMember{PhotoURL: &photoURL}); err != nil {
		return Member{}, err
	}
	return old, nil
}

// PhotoInUse reports whether a member other than excludedID has photoURL as its photo.
func (svc *Service) PhotoInUse(photoURL string, excludedID int) (bool, error) {
	if photoURL == "" {
		return false, nil
	}
	members, err := svc.repo.QueryAllMembers()
	if err != nil {
		return false, errors.Wrap(err, "querying members")
	}
	for _, m := range members {
		if m.ID != excludedID && m.PhotoURL == photoURL {
			return true, nil
		}
	}
	return false, nil
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteMember(id)
}
