package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
)

// Service sends customer-facing appointment emails. Delivery is best effort:
// failures are logged and never surfaced to the scheduling path.
type Service interface {
	AppointmentCreated(ctx context.Context, apt *model.Appointment)
	AppointmentRescheduled(ctx context.Context, apt *model.Appointment)
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type service struct {
	dialer    *gomail.Dialer
	from      string
	customers repository.CustomerRepository
}

func NewService(cfg SMTPConfig, customers repository.CustomerRepository) Service {
	return &service{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		customers: customers,
	}
}

func (s *service) AppointmentCreated(ctx context.Context, apt *model.Appointment) {
	s.send(ctx, apt, "Randevunuz oluşturuldu",
		fmt.Sprintf("Randevunuz %s tarihinde saat %s için oluşturuldu.",
			apt.Date.Format("02.01.2006"), apt.Date.Format("15:04")))
}

func (s *service) AppointmentRescheduled(ctx context.Context, apt *model.Appointment) {
	s.send(ctx, apt, "Randevunuz güncellendi",
		fmt.Sprintf("Randevunuz %s tarihinde saat %s olarak güncellendi.",
			apt.Date.Format("02.01.2006"), apt.Date.Format("15:04")))
}

func (s *service) send(ctx context.Context, apt *model.Appointment, subject, body string) {
	customer, err := s.customers.Get(ctx, apt.CustomerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", apt.CustomerID.String()).Msg("failed to load customer for notification")
		return
	}
	if customer.Email == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", customer.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	go func() {
		if err := s.dialer.DialAndSend(m); err != nil {
			log.Error().Err(err).Str("to", customer.Email).Msg("failed to send notification email")
		}
	}()
}

// Noop satisfies Service when SMTP is not configured.
type Noop struct{}

func (Noop) AppointmentCreated(context.Context, *model.Appointment)     {}
func (Noop) AppointmentRescheduled(context.Context, *model.Appointment) {}
