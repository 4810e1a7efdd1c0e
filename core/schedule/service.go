package schedule

type (
	Repository interface {
		GetSchedule() ([]Slot, error)
		ReplaceSchedule(slots []Slot) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Week returns the timetable rows in display order.
func (svc *Service) Week() ([]Slot, error) {
	return svc.repo.GetSchedule()
}

func (svc *Service) Replace(rs ReplaceSchedule) ([]Slot, error) {
	if err := svc.repo.ReplaceSchedule(rs.Slots); err != nil {
		return nil, err
	}
	return svc.repo.GetSchedule()
}
