package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resendlabs/resend-go"
)

type ResendEmailSender struct {
	Client *resend.Client
	From   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client: resend.NewClient(apiKey),
		From:   from,
	}
}

func (s *ResendEmailSender) SendDeactivationNotice(ctx context.Context, email string, reason string) error {
	subject := "Your account has been deactivated"
	html := fmt.Sprintf("<p>Your account has been deactivated.</p><p>Reason: %s</p>", reason)
	text := fmt.Sprintf("Your account has been deactivated. Reason: %s", reason)
	return s.send(email, subject, html, text)
}

func (s *ResendEmailSender) SendReactivationNotice(ctx context.Context, email string, reason string) error {
	subject := "Your account has been reactivated"
	html := fmt.Sprintf("<p>Your account has been reactivated.</p><p>Reason: %s</p>", reason)
	text := fmt.Sprintf("Your account has been reactivated. Reason: %s", reason)
	return s.send(email, subject, html, text)
}

func (s *ResendEmailSender) send(to string, subject string, html string, text string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	_, err := s.Client.Emails.Send(&resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	return err
}
