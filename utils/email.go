package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "impact@mail.egmrc.com"
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
	}
}

// SendVerificationEmail mails the click-through verification link. When SMTP
// is not configured (dev, tests) the link is logged instead of sent so the
// registration flow still completes.
func SendVerificationEmail(to, verifyURL string) error {
	config := loadEmailConfig()
	if config.Host == "" {
		LogInfo("SMTP not configured, verification link for %s: %s", to, verifyURL)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email for Impact Offers")

	body := fmt.Sprintf(`
		<h2>Welcome to Impact Offers!</h2>
		<p>Please confirm your email address to unlock offer redemptions:</p>
		<p><a href="%s">Verify my email</a></p>
		<p>If you didn't sign up, you can ignore this email.</p>
	`, verifyURL)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
