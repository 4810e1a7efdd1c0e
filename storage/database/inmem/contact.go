package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/contact"

type messageRepository struct {
	tbl *Table[contact.Message]
}

var _ contact.Repository = (*messageRepository)(nil)

func NewMessageRepository(db *DB) contact.Repository {
	return &messageRepository{tbl: db.messages}
}

func (repo *messageRepository) CreateMessage(msg contact.Message) (contact.Message, error) {
	return repo.tbl.Create(msg), nil
}

func (repo *messageRepository) QueryAllMessages() ([]contact.Message, error) {
	return repo.tbl.All(), nil
}
