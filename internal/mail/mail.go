// Package mail delivers a generated document by email over SMTP.
package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP settings. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender sends plain-text mail through a single SMTP endpoint.
type Sender struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender builds a sender; port defaults to 587.
func NewSender(cfg Config) *Sender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Sender{cfg: cfg, send: smtp.SendMail}
}

// Enabled reports whether SMTP delivery is configured.
func (s *Sender) Enabled() bool {
	return s != nil && s.cfg.Host != "" && s.cfg.From != ""
}

// Send delivers body as a plain-text message.
func (s *Sender) Send(to, subject, body string) error {
	if !s.Enabled() {
		return errors.New("email delivery is not configured")
	}
	to = strings.TrimSpace(to)
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("invalid recipient address %q", to)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", sanitizeHeader(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// sanitizeHeader strips CR/LF to block header injection through the subject.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
