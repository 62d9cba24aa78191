// Package mailer dispatches account lifecycle emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends activation and password reset emails. Links embed the token
// under the service's public base URL.
type Mailer struct {
	client  *mail.Client
	from    string
	baseURL string
}

func New(host string, port int, username, password, from, baseURL string) (*Mailer, error) {
	const op = "mailer.New"

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create smtp client: %w", op, err)
	}

	return &Mailer{
		client:  client,
		from:    from,
		baseURL: baseURL,
	}, nil
}

func (m *Mailer) SendActivationEmail(ctx context.Context, email, token string) error {
	const op = "mailer.Mailer.SendActivationEmail"
	const subject = "Account Activation"

	if err := m.send(ctx, email, subject, activationBody(m.baseURL, token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	const op = "mailer.Mailer.SendPasswordResetEmail"
	const subject = "Password Reset"

	if err := m.send(ctx, email, subject, resetBody(m.baseURL, token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func activationBody(baseURL, token string) string {
	return fmt.Sprintf(
		"Please activate your account by clicking the following link: %s/api/users/activate/%s",
		baseURL, token,
	)
}

func resetBody(baseURL, token string) string {
	return fmt.Sprintf(
		"You are receiving this because you (or someone else) have requested the reset of the password for your account. "+
			"Please click on the following link, or paste it into your browser to complete the process: %s/api/users/reset-password/%s",
		baseURL, token,
	)
}
