// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

/*
Package mail delivers transactional emails (verification codes, password
reset codes).

# Architecture

The [Sender] interface is the only thing the service layer sees. Two
implementations exist:

  - SMTPSender: real delivery via an SMTP relay (production).
  - LogSender: writes the message to the structured log (development, tests).

Delivery happens synchronously inside the request so that a send failure can
surface to the caller. The request timeout bounds slow providers.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Delivery

// SMTPSender delivers mail through an authenticated SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

/*
NewSMTPSender creates a production mail sender.

Parameters:
  - host: SMTP relay hostname
  - port: SMTP relay port (usually 587 for STARTTLS)
  - username: SMTP auth username
  - password: SMTP auth password
  - from: Sender address used for all outbound mail

Returns:
  - *SMTPSender: Ready-to-use sender
  - error: If the client cannot be configured
*/
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("mail_client_init_failed: %w", err)
	}

	return &SMTPSender{client: client, from: from}, nil
}

// Send delivers a plain-text message to a single recipient.
func (sender *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	message := gomail.NewMsg()

	if err := message.From(sender.from); err != nil {
		return fmt.Errorf("mail_invalid_from: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mail_invalid_recipient: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextPlain, body)

	if err := sender.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail_send_failed: %w", err)
	}

	return nil
}

// # Development Delivery

// LogSender writes outbound mail to the structured log instead of sending it.
// Used when no SMTP host is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only mail sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it. Never fails.
func (sender *LogSender) Send(ctx context.Context, to, subject, body string) error {
	sender.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
