package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	FROM_NAME            = "Métricas Boss"
	CERTIFICATE_TEMPLATE = "certificate.tmpl"

	// AttachmentFilename is the name the participant sees on the attached PDF.
	AttachmentFilename = "certificate.pdf"
	AttachmentMIME     = "application/pdf"
)

//go:embed "templates"
var FS embed.FS

// ErrSuppressed reports that the provider refused the recipient because they
// are on its suppression list. Callers log it as its own condition, but the
// send still counts as failed: the contract is "email delivered".
var ErrSuppressed = errors.New("recipient is on the provider suppression list")

// Client sends the certificate email. Implementations fetch the PDF back from
// its public URL and attach it alongside the fixed HTML body.
type Client interface {
	SendCertificate(ctx context.Context, toEmail, attachmentURL string) error
}

// FetchError reports a failure to retrieve the attachment bytes before the
// provider was ever contacted.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch attachment %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// FetchAttachment downloads the stored certificate as raw bytes.
func FetchAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return body, nil
}

type certificateMailData struct {
	AttachmentURL string
}

// renderTemplate extracts the subject and body blocks from an embedded mail
// template, the same layout the templates directory documents.
func renderTemplate(templateFile string, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse mail template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to execute body template: %w", err)
	}

	return subject.String(), body.String(), nil
}

// Providers report suppression in their error payloads rather than with a
// dedicated code, so classification is by message.
func isSuppressed(detail string) bool {
	return strings.Contains(strings.ToLower(detail), "suppress")
}
