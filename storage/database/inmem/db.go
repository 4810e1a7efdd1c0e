// Package inmemdb keeps every record in process memory. Nothing survives a restart.
package inmemdb

import (
	"sync"

	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/contact"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

type scheduleTable struct {
	mutex sync.RWMutex
	slots []schedule.Slot
}

// DB holds one Table per record kind. Each kind has its own id sequence.
type DB struct {
	users         *Table[user.User]
	members       *Table[member.Member]
	announcements *Table[announcement.Announcement]
	transactions  *Table[ledger.Transaction]
	messages      *Table[contact.Message]
	schedule      *scheduleTable
}

func Open() *DB {
	return &DB{
		users:         NewTable(func(u *user.User, id int) { u.ID = id }),
		members:       NewTable(func(m *member.Member, id int) { m.ID = id }),
		announcements: NewTable(func(a *announcement.Announcement, id int) { a.ID = id }),
		transactions:  NewTable(func(tx *ledger.Transaction, id int) { tx.ID = id }),
		messages:      NewTable(func(msg *contact.Message, id int) { msg.ID = id }),
		schedule:      new(scheduleTable),
	}
}
