package core

import (
	"bytes"
	"io/fs"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	appfs "github.com/ardiann-eng/CryptgenFix122/fs"
)

const emailTemplatesDir = "templates/email"

var (
	templates    map[string]*texttmpl.Template // {name: template}
	templatesErr error
	tmplInit     sync.Once

	ErrTemplateNotFound = errors.New("email template not found")
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
	}

	ContextData struct {
		AppName         string
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render fills TextContent, either from BodyStr or from the named template.
func (m *EmailMessage) Render(appName, frontendBaseURL string) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	} else if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(parseTemplates) // only execute once during first request
	if templatesErr != nil {
		return errors.Wrap(templatesErr, "parsing email templates")
	}
	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return errors.Wrap(ErrTemplateNotFound, m.TemplateName)
	}

	var buff bytes.Buffer
	data := ContextData{AppName: appName, FrontendBaseURL: frontendBaseURL, Data: m.TemplateData}
	if err := tmpl.ExecuteTemplate(&buff, m.TemplateName+".txt", data); err != nil {
		return errors.Wrap(err, "executing "+m.TemplateName)
	}
	m.TextContent = strings.TrimSpace(buff.String())
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

func parseTemplates() {
	templates = make(map[string]*texttmpl.Template)

	fps, err := fs.Glob(appfs.FS, path.Join(emailTemplatesDir, "*.txt"))
	if err != nil {
		templatesErr = err
		return
	}
	base := path.Join(emailTemplatesDir, "_base.txt")
	for _, fp := range fps {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		tmpl, err := texttmpl.New(fname).Option("missingkey=error").ParseFS(appfs.FS, base, fp)
		if err != nil {
			templatesErr = err
			return
		}
		templates[strings.TrimSuffix(fname, ".txt")] = tmpl
	}
}
