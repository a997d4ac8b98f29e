package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
)

// SendEmail gửi email qua SMTP bằng gomail.
// Dùng cho recipient là email (daily digest khi nhà hàng không có SMS).
func SendEmail(cfg *config.Configuration, to, subject, body string) error {
	if cfg.SMTPHost == "" {
		return fmt.Errorf("email channel chưa được cấu hình")
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
