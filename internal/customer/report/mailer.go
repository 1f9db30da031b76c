package report

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"
	"github.com/wneessen/go-mail"

	"github.com/allisson/cardwatch/internal/customer/usecase"
	apperrors "github.com/allisson/cardwatch/internal/errors"
	customValidation "github.com/allisson/cardwatch/internal/validation"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Validate checks the settings required to open an SMTP session.
func (c SMTPConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required, customValidation.NotBlank),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.From, validation.Required, customValidation.Email),
	)
	return customValidation.WrapValidationError(err)
}

// SMTPMailer delivers report emails through an SMTP server with go-mail.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates a mailer. Authentication is enabled only when a username is
// configured; STARTTLS is used when the server offers it.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create smtp client")
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers a plain-text email with the given attachments.
func (m *SMTPMailer) Send(
	ctx context.Context,
	to []string,
	subject, body string,
	attachments ...usecase.Attachment,
) error {
	msg, err := m.message(to, subject, body, attachments...)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return apperrors.Wrap(err, "failed to send email")
	}
	return nil
}

func (m *SMTPMailer) message(
	to []string,
	subject, body string,
	attachments ...usecase.Attachment,
) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid sender address: "+err.Error())
	}
	if err := msg.To(to...); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient address: "+err.Error())
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	for _, attachment := range attachments {
		if err := msg.AttachReader(attachment.Filename, attachment.Content); err != nil {
			return nil, apperrors.Wrap(err, "failed to attach "+attachment.Filename)
		}
	}
	return msg, nil
}
