package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"sort"
	"strings"
)

// Notifier sends best-effort outbound notifications. Failures are logged and
// swallowed by callers; a notification must never fail the operation that
// triggered it.
type Notifier interface {
	Notify(event string, payload map[string]string) error
}

// Mailer sends notifications over SMTP to the admin address.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *Mailer) Notify(event string, payload map[string]string) error {
	subject, body := render(event, payload)
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + m.user,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{m.user}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func render(event string, payload map[string]string) (subject, body string) {
	switch event {
	case "student_created":
		subject = "New Student Added: " + payload["name"]
	case "student_updated":
		subject = "Student Updated: " + payload["name"]
	case "student_deleted":
		subject = "Student Deleted: " + payload["student_id"]
	default:
		subject = "Campus Admin Notification: " + event
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("Event: " + event + "\r\n\r\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\r\n", k, payload[k])
	}
	b.WriteString("\r\nCampus Admin System\r\n")
	return subject, b.String()
}

// LogOnly is used when SMTP is unconfigured: notifications land in the log
// instead of a mailbox.
type LogOnly struct{}

func (LogOnly) Notify(event string, payload map[string]string) error {
	log.Printf("[notify] %s %v", event, payload)
	return nil
}
