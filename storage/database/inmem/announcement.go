package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/announcement"

type announcementRepository struct {
	tbl *Table[announcement.Announcement]
}

var _ announcement.Repository = (*announcementRepository)(nil)

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{tbl: db.announcements}
}

func (repo *announcementRepository) CreateAnnouncement(a announcement.Announcement) (announcement.Announcement, error) {
	return repo.tbl.Create(a), nil
}

func (repo *announcementRepository) QueryAllAnnouncements() ([]announcement.Announcement, error) {
	return repo.tbl.All(), nil
}

func (repo *announcementRepository) FilterAnnouncements(filter announcement.QueryFilter) ([]announcement.Announcement, error) {
	return repo.tbl.Filter(filter.Match), nil
}

func (repo *announcementRepository) GetAnnouncementByID(id int) (announcement.Announcement, error) {
	if a, ok := repo.tbl.Get(id); ok {
		return a, nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) UpdateAnnouncement(id int, ua announcement.UpdateAnnouncement) (announcement.Announcement, error) {
	if a, ok := repo.tbl.Update(id, ua.Apply); ok {
		return a, nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) DeleteAnnouncement(id int) error {
	if !repo.tbl.Delete(id) {
		return announcement.ErrNotFound
	}
	return nil
}
