package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/schedule"

type scheduleRepository struct {
	tbl *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{tbl: db.schedule}
}

func (repo *scheduleRepository) GetSchedule() ([]schedule.Slot, error) {
	repo.tbl.mutex.RLock()
	defer repo.tbl.mutex.RUnlock()
	return copySlots(repo.tbl.slots), nil
}

func (repo *scheduleRepository) ReplaceSchedule(slots []schedule.Slot) error {
	repo.tbl.mutex.Lock()
	defer repo.tbl.mutex.Unlock()
	repo.tbl.slots = copySlots(slots)
	return nil
}

// copySlots deep copies slots so callers never share a Class with the store.
func copySlots(slots []schedule.Slot) []schedule.Slot {
	cp := make([]schedule.Slot, len(slots))
	for i, s := range slots {
		cp[i] = schedule.Slot{
			Time:      s.Time,
			Monday:    copyClass(s.Monday),
			Tuesday:   copyClass(s.Tuesday),
			Wednesday: copyClass(s.Wednesday),
			Thursday:  copyClass(s.Thursday),
			Friday:    copyClass(s.Friday),
		}
	}
	return cp
}

func copyClass(cls *schedule.Class) *schedule.Class {
	if cls == nil {
		return nil
	}
	c := *cls
	return &c
}
