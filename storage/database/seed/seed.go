// Package seed loads the demo data the API starts with.
package seed

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	appfs "github.com/ardiann-eng/CryptgenFix122/fs"
)

const defaultFixtures = "fixtures/seed.yaml"

type Fixtures struct {
	Members       []member.NewMember             `yaml:"members"`
	Announcements []announcement.NewAnnouncement `yaml:"announcements"`
	Transactions  []ledger.NewTransaction        `yaml:"transactions"`
	Schedule      []schedule.Slot                `yaml:"schedule"`
}

// Services are the services fixtures are created through, so they get the same checks as API input.
type Services struct {
	Members       *member.Service
	Announcements *announcement.Service
	Ledger        *ledger.Service
	Schedule      *schedule.Service
}

// Load reads fixtures from path, or the embedded defaults when path is empty.
func Load(path string) (*Fixtures, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = appfs.FS.ReadFile(defaultFixtures)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading fixtures")
	}
	return Parse(data)
}

// Parse decodes YAML fixtures. Unknown keys are rejected.
func Parse(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := new(Fixtures)
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrap(err, "decoding fixtures")
	}
	return f, nil
}

// Validate checks every fixture without creating anything.
// Student id uniqueness is checked among the fixtures themselves.
func (f *Fixtures) Validate(validate *validator.Validate) error {
	seen := make(map[string]int, len(f.Members))
	for i := range f.Members {
		nm := f.Members[i]
		nm.Clean()
		if err := validate.Struct(nm); err != nil {
			return errors.Wrap(err, fmt.Sprintf("members[%d]", i))
		}
		if j, ok := seen[nm.StudentID]; ok {
			return errors.Wrap(member.ErrStudentIDExists, fmt.Sprintf("members[%d] (same as members[%d])", i, j))
		}
		seen[nm.StudentID] = i
	}
	for i := range f.Announcements {
		na := f.Announcements[i]
		if err := na.Validate(validate); err != nil {
			return errors.Wrap(err, fmt.Sprintf("announcements[%d]", i))
		}
	}
	for i := range f.Transactions {
		nt := f.Transactions[i]
		if err := nt.Validate(validate); err != nil {
			return errors.Wrap(err, fmt.Sprintf("transactions[%d]", i))
		}
	}
	if len(f.Schedule) > 0 {
		rs := schedule.ReplaceSchedule{Slots: f.Schedule}
		if err := rs.Validate(validate); err != nil {
			return errors.Wrap(err, "schedule")
		}
	}
	return nil
}

// Apply validates and creates every fixture in file order.
func (f *Fixtures) Apply(svcs Services, validate *validator.Validate, postedBy string) error {
	for i, nm := range f.Members {
		if err := nm.Validate(validate, svcs.Members); err != nil {
			return errors.Wrap(err, fmt.Sprintf("members[%d]", i))
		}
		if _, err := svcs.Members.Create(nm); err != nil {
			return errors.Wrap(err, fmt.Sprintf("creating members[%d]", i))
		}
	}
	for i, na := range f.Announcements {
		if err := na.Validate(validate); err != nil {
			return errors.Wrap(err, fmt.Sprintf("announcements[%d]", i))
		}
		if _, err := svcs.Announcements.Create(na, postedBy); err != nil {
			return errors.Wrap(err, fmt.Sprintf("creating announcements[%d]", i))
		}
	}
	for i, nt := range f.Transactions {
		if err := nt.Validate(validate); err != nil {
			return errors.Wrap(err, fmt.Sprintf("transactions[%d]", i))
		}
		if _, err := svcs.Ledger.Create(nt); err != nil {
			return errors.Wrap(err, fmt.Sprintf("creating transactions[%d]", i))
		}
	}
	if len(f.Schedule) > 0 {
		rs := schedule.ReplaceSchedule{Slots: f.Schedule}
		if err := rs.Validate(validate); err != nil {
			return errors.Wrap(err, "schedule")
		}
		if _, err := svcs.Schedule.Replace(rs); err != nil {
			return errors.Wrap(err, "replacing schedule")
		}
	}
	return nil
}
