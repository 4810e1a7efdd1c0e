package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/user"

type userRepository struct {
	tbl *Table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{tbl: db.users}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	return repo.tbl.Create(usr), nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	return repo.tbl.All(), nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	if usr, ok := repo.tbl.Get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	if usr, ok := repo.tbl.Find(func(u user.User) bool { return u.Username == username }); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	// only save mutable fields
	updated, ok := repo.tbl.Update(usr.ID, func(u *user.User) {
		u.Role = usr.Role
		u.PasswordHash = usr.PasswordHash
		u.LastLogin = usr.LastLogin
	})
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return updated, nil
}
