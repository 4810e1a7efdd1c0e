package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
		// UpdateUser saves the role, password hash and last login of usr.
		UpdateUser(usr User) (User, error)
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

func (svc *Service) CheckUniqueness(uname string) error {
	_, err := svc.repo.GetUserByUsername(uname)
	switch errors.Cause(err) {
	case ErrNotFound:
		return nil
	case nil:
		return core.NewValidationError(
			ErrUsernameExists,
			core.FieldError{Field: "username", Error: ErrUsernameExists.Error()},
		)
	default:
		return errors.Wrap(err, "finding user by username")
	}
}

// Register creates a regular (non admin) user.
func (svc *Service) Register(nu NewUser) (User, error) {
	usr := User{
		Username:  nu.Username,
		Role:      RoleUser,
		CreatedAt: svc.nowFunc().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(usr)
}

// Authenticate checks the credentials and records the login time.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (svc *Service) Authenticate(uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}

	usr.LastLogin = svc.nowFunc().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

// EnsureAdmin creates the admin account, or resets its role and password when it already exists.
// passwordHash, a bcrypt hash, takes precedence over the plain password.
func (svc *Service) EnsureAdmin(uname, password string, passwordHash []byte) (User, error) {
	uname = core.CleanString(uname, true /* lower */)
	if uname == "" {
		return User{}, errors.New("admin username is required")
	}

	var usr User
	if len(passwordHash) > 0 {
		usr.PasswordHash = passwordHash
	} else if password != "" {
		if err := usr.SetPassword(password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	} else {
		return User{}, errors.New("admin password is required")
	}

	existing, err := svc.repo.GetUserByUsername(uname)
	switch errors.Cause(err) {
	case nil:
		existing.Role = RoleAdmin
		existing.PasswordHash = usr.PasswordHash
		return svc.repo.UpdateUser(existing)
	case ErrNotFound:
		usr.Username = uname
		usr.Role = RoleAdmin
		usr.CreatedAt = svc.nowFunc().UTC()
		return svc.repo.CreateUser(usr)
	default:
		return User{}, errors.Wrap(err, "finding user by username")
	}
}
