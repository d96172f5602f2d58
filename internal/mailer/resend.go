package mailer

import (
	"context"
	"fmt"

	"github.com/metricasboss/summit-cert-api/internal/util"
	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"
)

type ResendMailer struct {
	fromEmail string
	client    *resend.Client
	logger    *zap.SugaredLogger
}

func NewResend(apiKey string, fromEmail string, logger *zap.SugaredLogger) *ResendMailer {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return &ResendMailer{
		fromEmail: fromEmail,
		client:    resend.NewClient(apiKey),
		logger:    logger,
	}
}

func (m *ResendMailer) SendCertificate(ctx context.Context, toEmail, attachmentURL string) error {
	content, err := FetchAttachment(ctx, attachmentURL)
	if err != nil {
		return err
	}

	subject, body, err := renderTemplate(CERTIFICATE_TEMPLATE, certificateMailData{AttachmentURL: attachmentURL})
	if err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", FROM_NAME, m.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    body,
		Attachments: []*resend.Attachment{
			{
				Filename:    AttachmentFilename,
				Content:     content,
				ContentType: AttachmentMIME,
			},
		},
	}

	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		if isSuppressed(err.Error()) {
			m.logger.Infow("recipient suppressed by resend", "email", toEmail)
			return fmt.Errorf("%w: %v", ErrSuppressed, err)
		}

		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}
