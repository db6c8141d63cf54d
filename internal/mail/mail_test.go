package mail

import (
	"net/smtp"
	"strings"
	"testing"
)

func TestSendBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	s := NewSender(Config{Host: "mail.example.com", Port: 2525, From: "drafts@example.com"})
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.Send("user@example.com", "Your document\r\nX-Evil: 1", "Body text")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "mail.example.com:2525" || gotFrom != "drafts@example.com" {
		t.Fatalf("addr=%q from=%q", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "user@example.com" {
		t.Fatalf("to=%v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Your document X-Evil: 1\r\n") {
		t.Fatalf("subject header not sanitized: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nBody text") {
		t.Fatalf("body not separated from headers: %q", msg)
	}
}

func TestSendValidation(t *testing.T) {
	unconfigured := NewSender(Config{})
	if err := unconfigured.Send("user@example.com", "s", "b"); err == nil {
		t.Fatal("unconfigured sender must refuse to send")
	}

	s := NewSender(Config{Host: "mail.example.com", From: "drafts@example.com"})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return nil }
	if err := s.Send("not-an-address", "s", "b"); err == nil {
		t.Fatal("invalid recipient must be rejected")
	}
}

func TestEnabled(t *testing.T) {
	if NewSender(Config{Host: "h"}).Enabled() {
		t.Fatal("sender without From should be disabled")
	}
	if !NewSender(Config{Host: "h", From: "f@example.com"}).Enabled() {
		t.Fatal("sender with host and from should be enabled")
	}
}
