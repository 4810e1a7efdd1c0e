package announcement

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

var (
	// errors
	ErrNotFound        = errors.New("announcement not found")
	ErrInvalidOrdering = errors.New("invalid ordering")
)

type (
	Repository interface {
		CreateAnnouncement(a Announcement) (Announcement, error)
		QueryAllAnnouncements() ([]Announcement, error)
		FilterAnnouncements(filter QueryFilter) ([]Announcement, error)
		GetAnnouncementByID(id int) (Announcement, error)
		UpdateAnnouncement(id int, ua UpdateAnnouncement) (Announcement, error)
		DeleteAnnouncement(id int) error
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

// Create publishes na; postedBy is used when na does not name its author.
func (svc *Service) Create(na NewAnnouncement, postedBy string) (Announcement, error) {
	a := Announcement{
		Title:    na.Title,
		Content:  na.Content,
		Category: na.Category,
		Date:     na.Date,
		PostedBy: na.PostedBy,
	}
	if a.Date.IsZero() {
		a.Date = core.DateOf(svc.nowFunc())
	}
	if a.PostedBy == "" {
		a.PostedBy = postedBy
	}
	return svc.repo.CreateAnnouncement(a)
}

// Query returns the announcements matching filter, sorted by orderings (newest first by default).
func (svc *Service) Query(filter QueryFilter, orderings []core.Ordering) ([]Announcement, error) {
	if len(orderings) == 0 {
		orderings = []core.Ordering{{Field: "date"}, {Field: "id"}}
	}
	for _, ord := range orderings {
		if _, ok := announcementOrderings[ord.Field]; !ok {
			return nil, core.NewValidationError(
				ErrInvalidOrdering,
				core.FieldError{Field: "ordering", Error: "cannot order by " + ord.Field},
			)
		}
	}

	anns, err := svc.repo.FilterAnnouncements(filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering announcements")
	}
	sort.SliceStable(anns, func(i, j int) bool {
		for _, ord := range orderings {
			c := announcementOrderings[ord.Field](anns[i], anns[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return anns, nil
}

var announcementOrderings = map[string]func(a, b Announcement) int{
	"id":    func(a, b Announcement) int { return a.ID - b.ID },
	"date":  func(a, b Announcement) int { return a.Date.Compare(b.Date.Time) },
	"title": func(a, b Announcement) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
}

func (svc *Service) GetByID(id int) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(id)
}

func (svc *Service) Update(id int, ua UpdateAnnouncement) (Announcement, error) {
	return svc.repo.UpdateAnnouncement(id, ua)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteAnnouncement(id)
}
