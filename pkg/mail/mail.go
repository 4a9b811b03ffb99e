package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"Memeow/config"
	"Memeow/pkg/log"

	"go.uber.org/zap"
)

// Mailer 纯文本邮件
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer 未配置 smtp host 时退化为只打日志
func NewMailer(conf *config.Config) Mailer {
	if conf.Mail == nil || conf.Mail.Host == "" {
		return &LogMailer{}
	}
	return &SMTPMailer{conf: conf.Mail, timeout: 30 * time.Second}
}

type SMTPMailer struct {
	conf    *config.Mail
	timeout time.Duration
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.conf.Host, m.conf.Port)
	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.conf.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(nil); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.conf.Username != "" {
		auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(m.conf.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(buildMessage(m.conf.From, to, subject, body))); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.String()
}

// LogMailer 开发环境使用，同时记录已发送的邮件供测试检查
type LogMailer struct {
	mu   sync.Mutex
	Sent []Message
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, Message{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	log.L.Info("mail", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *LogMailer) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.Sent...)
}
