package usecase

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"storefront/pkg/utils"

	"go.uber.org/zap"
)

const defaultSMTPTimeout = 10 * time.Second

// Notifier delivers plain-text mail. Callers treat failures as non-fatal.
type Notifier interface {
	Send(to, subject, body string) error
}

type smtpNotifier struct {
	config utils.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type logNotifier struct {
	log *zap.Logger
}

// NewNotifier returns an SMTP notifier, or one that only logs when no SMTP host is configured.
func NewNotifier(config utils.EmailConfig, log *zap.Logger) Notifier {
	if config.Host == "" {
		return &logNotifier{log: log.With(zap.String("service", "notifier"))}
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultSMTPTimeout
	}

	n := &smtpNotifier{config: config}
	n.send = n.sendMail
	return n
}

func (n *smtpNotifier) Send(to, subject, body string) error {
	addr := net.JoinHostPort(n.config.Host, strconv.Itoa(n.config.Port))

	var auth smtp.Auth
	if n.config.User != "" {
		auth = smtp.PlainAuth("", n.config.User, n.config.Password, n.config.Host)
	}

	return n.send(addr, auth, n.config.From, []string{to}, buildMessage(n.config.From, to, subject, body))
}

// sendMail follows smtp.SendMail but holds the connection to config.Timeout,
// so a stalled server cannot block the caller.
func (n *smtpNotifier) sendMail(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, n.config.Timeout)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(n.config.Timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("set smtp deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, n.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: n.config.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to: %w", err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data end: %w", err)
	}

	return c.Quit()
}

func (n *logNotifier) Send(to, subject, body string) error {
	n.log.Info("Mail not sent, SMTP disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(to) + "\r\n")
	b.WriteString("Subject: " + headerValue(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// headerValue keeps user input on a single header line.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
