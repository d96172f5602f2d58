package certificate

import (
	"context"
	"errors"
	"time"

	"github.com/metricasboss/summit-cert-api/internal/mailer"
	"github.com/metricasboss/summit-cert-api/internal/pdf"
	"github.com/metricasboss/summit-cert-api/internal/storage"
	"go.uber.org/zap"
)

// DateLayout matches the short date the legacy service printed on
// certificates (moment's "L" in its default locale).
const DateLayout = "01/02/2006"

// MarkupRenderer renders the certificate page for a participant.
type MarkupRenderer interface {
	Render(name, date string) (string, error)
}

// Request is the single transient entity of the pipeline. It is fully
// determined by the inbound HTTP request and never persisted, the only
// durable artifact is the PDF object keyed by ID.
type Request struct {
	ID    string
	Name  string
	Email string
}

// Service drives the generation pipeline: render markup, print to PDF,
// upload, notify. Collaborators are injected so tests can substitute fakes.
type Service struct {
	markup   MarkupRenderer
	pdf      pdf.Generator
	uploader storage.Uploader
	mailer   mailer.Client
	logger   *zap.SugaredLogger
}

func NewService(markup MarkupRenderer, generator pdf.Generator, uploader storage.Uploader, mail mailer.Client, logger *zap.SugaredLogger) *Service {
	return &Service{
		markup:   markup,
		pdf:      generator,
		uploader: uploader,
		mailer:   mail,
		logger:   logger,
	}
}

// Generate runs the pipeline for one request and returns the public URL of
// the uploaded certificate. A failure at any step aborts the run. The upload
// is not transactional with notification: when the send fails the object
// stays reachable at its URL and only the email is missing.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	date := time.Now().Format(DateLayout)

	markup, err := s.markup.Render(req.Name, date)
	if err != nil {
		s.logger.Errorw("certificate template rendering failed", "error", err, "id", req.ID)
		return "", &StageError{Stage: StageTemplate, Err: err}
	}

	doc, err := s.pdf.Generate(ctx, markup)
	if err != nil {
		s.logger.Errorw("certificate pdf conversion failed", "error", err, "id", req.ID)
		return "", &StageError{Stage: StageRender, Err: err}
	}

	url, err := s.uploader.Upload(ctx, doc, req.ID)
	if err != nil {
		s.logger.Errorw("certificate upload failed", "error", err, "id", req.ID)
		return "", &StageError{Stage: StageUpload, Err: err}
	}

	if err := s.mailer.SendCertificate(ctx, req.Email, url); err != nil {
		var fetchErr *mailer.FetchError
		switch {
		case errors.As(err, &fetchErr):
			s.logger.Errorw("certificate attachment fetch failed", "error", err, "id", req.ID, "url", url)
			return "", &StageError{Stage: StageFetch, Err: err}
		case errors.Is(err, mailer.ErrSuppressed):
			// Not alarming on its own, the recipient asked not to be mailed.
			// The request still fails because delivery is part of the contract.
			s.logger.Infow("certificate recipient suppressed", "id", req.ID, "email", req.Email)
			return "", &StageError{Stage: StageDeliver, Err: err}
		default:
			s.logger.Errorw("certificate mail delivery failed", "error", err, "id", req.ID, "email", req.Email)
			return "", &StageError{Stage: StageDeliver, Err: err}
		}
	}

	s.logger.Infow("certificate generated and mailed", "id", req.ID, "url", url)

	return url, nil
}

// Preview renders only the markup for the given name, no PDF, no upload, no
// email. The single side effect is the template file read.
func (s *Service) Preview(name string) (string, error) {
	date := time.Now().Format(DateLayout)

	markup, err := s.markup.Render(name, date)
	if err != nil {
		s.logger.Errorw("certificate preview rendering failed", "error", err, "name", name)
		return "", &StageError{Stage: StageTemplate, Err: err}
	}

	return markup, nil
}
