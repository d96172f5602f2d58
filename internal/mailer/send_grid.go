package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/metricasboss/summit-cert-api/internal/util"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer is the alternate provider behind the same Client interface,
// selected with MAIL_PROVIDER=sendgrid.
type SendGridMailer struct {
	fromEmail string
	client    *sendgrid.Client
	logger    *zap.SugaredLogger
}

func NewSendgrid(apiKey string, fromEmail string, logger *zap.SugaredLogger) *SendGridMailer {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return &SendGridMailer{
		fromEmail: fromEmail,
		client:    sendgrid.NewSendClient(apiKey),
		logger:    logger,
	}
}

func (m *SendGridMailer) SendCertificate(ctx context.Context, toEmail, attachmentURL string) error {
	content, err := FetchAttachment(ctx, attachmentURL)
	if err != nil {
		return err
	}

	subject, body, err := renderTemplate(CERTIFICATE_TEMPLATE, certificateMailData{AttachmentURL: attachmentURL})
	if err != nil {
		return err
	}

	from := mail.NewEmail(FROM_NAME, m.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", body)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(content))
	attachment.SetType(AttachmentMIME)
	attachment.SetFilename(AttachmentFilename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		if isSuppressed(response.Body) {
			m.logger.Infow("recipient suppressed by sendgrid", "email", toEmail, "status", response.StatusCode)
			return fmt.Errorf("%w: status %d", ErrSuppressed, response.StatusCode)
		}

		return fmt.Errorf("sendgrid: send rejected with status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}
