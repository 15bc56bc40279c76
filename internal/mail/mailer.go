package mail

import (
	"errors"
	"io"

	gomail "gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp_not_configured")

// Mailer sends document emails over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func New(host string, port int, username, password, sender string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password, Sender: sender}
}

func (m *Mailer) Configured() bool {
	return m != nil && m.Host != "" && m.Username != "" && m.Password != ""
}

// SendDocument emails a rendered PDF to the recipient.
func (m *Mailer) SendDocument(to, subject, body, filename string, pdfData []byte) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain; charset=utf-8", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdfData)
		return err
	}))
	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}
