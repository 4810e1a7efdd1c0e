package contact

import (
	"net/mail"
	"sort"
	"time"

	"github.com/ardiann-eng/CryptgenFix122/core"
)

const receivedTemplate = "contact_received"

type (
	Repository interface {
		CreateMessage(msg Message) (Message, error)
		QueryAllMessages() ([]Message, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		inbox   mail.Address
		nowFunc func() time.Time
	}
)

// NewService returns a contact Service; new messages are forwarded to inbox when it has an address.
func NewService(repo Repository, mailSvc core.EmailService, inbox mail.Address) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		inbox:   inbox,
		nowFunc: time.Now,
	}
}

func (svc *Service) Create(nm NewMessage) (Message, error) {
	msg, err := svc.repo.CreateMessage(Message{
		Name:       nm.Name,
		Email:      nm.Email,
		Subject:    nm.Subject,
		Message:    nm.Message,
		ReceivedAt: svc.nowFunc().UTC(),
	})
	if err != nil {
		return Message{}, err
	}

	if svc.inbox.Address != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{svc.inbox},
			Subject:      "New contact message: " + msg.Subject,
			TemplateName: receivedTemplate,
			TemplateData: msg,
		})
	}
	return msg, nil
}

// QueryAll returns every message, newest first.
func (svc *Service) QueryAll() ([]Message, error) {
	msgs, err := svc.repo.QueryAllMessages()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].ID > msgs[j].ID })
	return msgs, nil
}
