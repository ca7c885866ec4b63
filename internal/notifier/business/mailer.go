package business

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"printshop/pkg/errorutil"
	"printshop/pkg/logger"
)

// Mail 一封待发送的邮件
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer 邮件发送
type Mailer interface {
	Send(ctx context.Context, mail *Mail) error
}

// LogMailer 只写日志，开发环境使用
type LogMailer struct {
	logger logger.Logger
}

// NewLogMailer 创建日志邮件器
func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

// Send 记录邮件内容
func (m *LogMailer) Send(ctx context.Context, mail *Mail) error {
	m.logger.Infof(ctx, "[LogMailer] to=%s subject=%q\n%s", mail.To, mail.Subject, mail.Body)
	return nil
}

// SMTPConfig SMTP 参数
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer 通过 SMTP 发送
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer 创建 SMTP 邮件器
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Send 发送邮件；连接类错误可重试，收件人被拒不可重试
func (m *SMTPMailer) Send(ctx context.Context, mail *Mail) error {
	if err := ctx.Err(); err != nil {
		return errorutil.RetriableWrap(err, "send mail cancelled")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	if err := m.send(addr, auth, m.cfg.From, []string{mail.To}, m.message(mail)); err != nil {
		if isPermanentSMTP(err) {
			return errorutil.NonRetriableWithDetails("mail rejected by server", err.Error())
		}
		return errorutil.RetriableWrap(err, "send mail failed")
	}
	return nil
}

func (m *SMTPMailer) message(mail *Mail) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", mail.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mail.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(mail.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// isPermanentSMTP 5xx 回复视为永久失败
func isPermanentSMTP(err error) bool {
	msg := err.Error()
	return len(msg) >= 3 && msg[0] == '5' && msg[1] >= '0' && msg[1] <= '9' && msg[2] >= '0' && msg[2] <= '9'
}
