package util

import (
	"fmt"
	"html"
	"path/filepath"

	"github.com/sunthewhat/easy-cert-form/type/shared"
	"gopkg.in/gomail.v2"
)

// Sender is the part of gomail.Dialer the mailer needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type CertificateMailer struct {
	sender Sender
	from   string
}

func InitDialer(cfg shared.MailConfig) *CertificateMailer {
	port := cfg.Port
	if port == 0 {
		port = 587
	}

	return NewCertificateMailer(gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass), cfg.User)
}

func NewCertificateMailer(sender Sender, from string) *CertificateMailer {
	return &CertificateMailer{
		sender: sender,
		from:   from,
	}
}

func (m *CertificateMailer) SendCertificate(to string, name string, path string) error {
	mailer := m.Message(to, name, path)
	if err := m.sender.DialAndSend(mailer); err != nil {
		return fmt.Errorf("failed to send certificate to %s: %w", to, err)
	}
	return nil
}

func (m *CertificateMailer) Message(to string, name string, path string) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.from)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", "Your Certificate")
	mailer.SetBody("text/html", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Please find your certificate attached to this email.</p>
		<p>Best regards,<br>Easy Cert Team</p>
	`, html.EscapeString(name)))

	mailer.Attach(path, gomail.Rename(filepath.Base(path)), gomail.SetHeader(map[string][]string{
		"Content-Type": {"application/pdf"},
	}))
	return mailer
}
