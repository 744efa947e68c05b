package email

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/meditrack/hms-api/internal/config"
)

// Service sends notification mail. When no SMTP host is configured every
// send is a no-op, so environments without a mail relay still run.
type Service interface {
	SendAppointmentConfirmation(to, patientName, doctorName string, scheduledAt time.Time) error
}

type service struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewService(cfg config.SMTPConfig) Service {
	s := &service{cfg: cfg}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *service) SendAppointmentConfirmation(to, patientName, doctorName string, scheduledAt time.Time) error {
	if s.dialer == nil || to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your appointment is confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s on %s has been confirmed.\n\nMediTrack",
		patientName, doctorName, scheduledAt.Format("Mon, 02 Jan 2006 15:04"),
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
