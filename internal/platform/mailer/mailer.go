// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

/*
Package mailer delivers out-of-band messages (confirmation codes) over SMTP.

Delivery is strictly best-effort by design: the signup contract promises the
caller a user record, not a delivered email, so callers log dispatch failures
and move on instead of propagating them.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer sends plain-text mail through a single SMTP relay.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
	logger   *slog.Logger
}

// New constructs a Mailer. An empty host puts the mailer in dry-run mode:
// messages are logged instead of sent, which keeps local development and CI
// free of a mail relay dependency.
func New(host, port, from, password string, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   logger,
	}
}

// SendConfirmationCode emails a signup confirmation code to the recipient.
func (mailer *Mailer) SendConfirmationCode(ctx context.Context, recipient, username, code string) error {

	subject := fmt.Sprintf("Hello, %s! Your confirmation code is inside", username)
	body := fmt.Sprintf("Use this confirmation code to obtain your access token:\n\n%s\n", code)

	// Dry-run mode: no relay configured.
	if mailer.host == "" {
		mailer.logger.InfoContext(ctx, "mail_dispatch_skipped",
			slog.String("recipient", recipient),
			slog.String("subject", subject),
		)
		return nil
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + mailer.from + "\r\n" +
		"To: " + recipient + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if mailer.password != "" {
		auth = smtp.PlainAuth("", mailer.from, mailer.password, mailer.host)
	}

	if err := smtp.SendMail(mailer.host+":"+mailer.port, auth, mailer.from, []string{recipient}, message); err != nil {
		return fmt.Errorf("mailer: smtp send failed: %w", err)
	}

	return nil
}
