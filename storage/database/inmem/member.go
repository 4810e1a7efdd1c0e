package inmemdb

import "github.com/ardiann-eng/CryptgenFix122/core/member"

type memberRepository struct {
	tbl *Table[member.Member]
}

var _ member.Repository = (*memberRepository)(nil)

func NewMemberRepository(db *DB) member.Repository {
	return &memberRepository{tbl: db.members}
}

func (repo *memberRepository) CreateMember(m member.Member) (member.Member, error) {
	return repo.tbl.Create(m), nil
}

func (repo *memberRepository) QueryAllMembers() ([]member.Member, error) {
	return repo.tbl.All(), nil
}

func (repo *memberRepository) FilterMembers(filter member.QueryFilter) ([]member.Member, error) {
	return repo.tbl.Filter(filter.Match), nil
}

func (repo *memberRepository) GetMemberByID(id int) (member.Member, error) {
	if m, ok := repo.tbl.Get(id); ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) GetMemberByStudentID(studentID string) (member.Member, error) {
	if m, ok := repo.tbl.Find(func(m member.Member) bool { return m.StudentID == studentID }); ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) UpdateMember(id int, um member.UpdateMember) (member.Member, error) {
	if m, ok := repo.tbl.Update(id, um.Apply); ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) DeleteMember(id int) error {
	if !repo.tbl.Delete(id) {
		return member.ErrNotFound
	}
	return nil
}
