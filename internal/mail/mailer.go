// Package mail sends transactional notifications through Resend. Delivery is
// best-effort everywhere: registration and approval never fail because an
// email did not send.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"academyhub/api/internal/config"
	"academyhub/api/internal/models"
)

type Mailer struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

// New returns a Mailer. Without an API key the mailer is a no-op, which keeps
// local development working with no mail credentials.
func New(cfg config.MailConfig, log zerolog.Logger) *Mailer {
	m := &Mailer{from: cfg.From, log: log}
	if cfg.APIKey != "" {
		m.client = resend.NewClient(cfg.APIKey)
	}
	return m
}

func (m *Mailer) send(ctx context.Context, to string, subject string, html string) {
	if m.client == nil || to == "" {
		return
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		m.log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email send failed")
	}
}

// SendRegistrationReceived confirms that a registration landed in the review
// queue.
func (m *Mailer) SendRegistrationReceived(ctx context.Context, academy models.Academy) {
	m.send(ctx, academy.ContactEmail,
		"Registration received: "+academy.Name,
		fmt.Sprintf("<p>Hi %s,</p><p>Your academy <strong>%s</strong> has been registered and is awaiting review. We will notify you once a decision is made.</p>",
			academy.ContactName, academy.Name))
}

// SendApprovalDecision notifies the academy contact about the review outcome.
func (m *Mailer) SendApprovalDecision(ctx context.Context, academy models.Academy) {
	var body string
	switch academy.Status {
	case models.AcademyStatusApproved:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Good news: <strong>%s</strong> has been approved. You can now sign in with your admin account.</p>",
			academy.ContactName, academy.Name)
	case models.AcademyStatusRejected:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Unfortunately the registration for <strong>%s</strong> was not approved.</p>",
			academy.ContactName, academy.Name)
	default:
		return
	}

	m.send(ctx, academy.ContactEmail, "Registration update: "+academy.Name, body)
}
