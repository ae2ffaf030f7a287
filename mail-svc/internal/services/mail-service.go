package services

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/ieeespac/spac_site/internal/dto"
)

//go:embed templates/confirmation.html
var templateFS embed.FS

var confirmationTmpl = template.Must(template.ParseFS(templateFS, "templates/confirmation.html"))

type MailOptions struct {
	Host           string
	Port           int
	Timeout        time.Duration
	Username       string
	Password       string
	From           string
	FromName       string
	Subject        string
	ConferenceName string
	ScheduleURL    string
}

type MailService struct {
	opts MailOptions
	send func(to string, msg []byte) error
}

func NewMailService(opts MailOptions) *MailService {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	s := &MailService{opts: opts}
	s.send = s.sendSMTPWithTimeout
	return s
}

// SendConfirmation emails the attendee a summary of the profile they submitted.
func (s *MailService) SendConfirmation(event dto.RegistrationSubmittedEvent) error {
	if event.Email == "" {
		return fmt.Errorf("event %s has no email", event.PublicID)
	}

	msg, err := s.buildMessage(event)
	if err != nil {
		return err
	}

	log.Printf("[MAIL] smtp sending to=%s via=%s", event.Email, s.addr())
	if err := s.send(event.Email, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", event.Email, err)
	}

	log.Printf("[MAIL] sent to=%s", event.Email)
	return nil
}

func (s *MailService) buildMessage(event dto.RegistrationSubmittedEvent) ([]byte, error) {
	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, map[string]any{
		"FirstName":      event.FirstName,
		"LastName":       event.LastName,
		"University":     event.University,
		"Program":        event.Program,
		"HasResume":      event.ResumeURL != nil,
		"ConferenceName": s.opts.ConferenceName,
		"ScheduleURL":    s.opts.ScheduleURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	fromHeader := fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.opts.FromName), s.opts.From)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", event.Email),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", s.opts.Subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	return []byte(msg), nil
}

func (s *MailService) addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", s.addr(), 8*time.Second)
	if err != nil {
		return err
	}
	// bounds the whole exchange, not only the dial
	_ = conn.SetDeadline(time.Now().Add(s.opts.Timeout))

	c, err := smtp.NewClient(conn, s.opts.Host)
	if err != nil {
		return err
	}
	defer func() {
		// Quit leaves the connection open when the QUIT exchange fails
		_ = c.Quit()
		_ = c.Close()
	}()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.opts.Host}); err != nil {
			return err
		}
	}
	if s.opts.Username != "" {
		auth := smtp.PlainAuth("", s.opts.Username, s.opts.Password, s.opts.Host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.opts.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
