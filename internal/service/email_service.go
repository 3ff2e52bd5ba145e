package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg   *config.EmailConfig
	store config.StoreConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, store config.StoreConfig) *EmailService {
	return &EmailService{cfg: cfg, store: store}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, resetToken string) error {
	link := strings.TrimRight(s.store.FrontendBaseURL, "/") + "/reset-password?token=" + resetToken
	subject := "Reset your password"
	body := fmt.Sprintf(
		"We received a request to reset the password for your account.\n\n"+
			"Open the link below to choose a new password. The link expires in 1 hour.\n\n%s\n\n"+
			"If you did not request this, you can safely ignore this email.",
		link,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendOrderConfirmEmail 发送订单确认邮件
func (s *EmailService) SendOrderConfirmEmail(order *models.Order) error {
	if order == nil {
		return ErrInvalidInput
	}
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNo)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Thank you for your order!\n\nOrder number: %s\n\n", order.OrderNo)
	for _, item := range order.Items {
		fmt.Fprintf(&buf, "  %s x%d  %s %s\n", item.ProductName, item.Quantity, item.TotalPrice.String(), order.Currency)
	}
	fmt.Fprintf(&buf, "\nSubtotal: %s %s\n", order.Subtotal.String(), order.Currency)
	fmt.Fprintf(&buf, "Shipping: %s %s\n", order.ShippingFee.String(), order.Currency)
	fmt.Fprintf(&buf, "Tax: %s %s\n", order.TaxAmount.String(), order.Currency)
	fmt.Fprintf(&buf, "Total: %s %s\n", order.TotalAmount.String(), order.Currency)
	fmt.Fprintf(&buf, "\nTrack your order: %s/orders/%s\n", strings.TrimRight(s.store.FrontendBaseURL, "/"), order.OrderNo)

	return s.sendTextEmail(order.CustomerEmail, subject, buf.String())
}

// SendContactNotifyEmail 联系表单留言通知到站点邮箱
func (s *EmailService) SendContactNotifyEmail(message *models.ContactMessage) error {
	if message == nil {
		return ErrInvalidInput
	}
	if s.cfg == nil || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	subject := "New contact message: " + message.Subject
	if strings.TrimSpace(message.Subject) == "" {
		subject = "New contact message"
	}
	body := fmt.Sprintf(
		"From: %s <%s>\n\n%s",
		message.Name, message.Email, message.Message,
	)
	return s.sendTextEmail(s.cfg.From, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP test email"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email confirming the SMTP configuration works."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
