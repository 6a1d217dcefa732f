package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/caresync/hms-api/pkg/logger"
)

// Service sends transactional mail. The only flow that emails today is
// password reset; notifications are inbox rows and are never mailed.
type Service interface {
	SendPasswordReset(to, token string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) SendPasswordReset(to, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset request")
	m.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Reset token: %s\n\n"+
			"The token expires in one hour. If you did not request this, ignore this message.", token))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// noopService is used when SMTP is not configured; it logs instead of
// sending so the reset flow still works in development.
type noopService struct {
	logger *logger.Logger
}

func NewNoopService(log *logger.Logger) Service {
	return &noopService{logger: log}
}

func (s *noopService) SendPasswordReset(to, token string) error {
	s.logger.Info("password reset email suppressed (smtp not configured)", "to", to)
	return nil
}
