package certificate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/metricasboss/summit-cert-api/internal/mailer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarkup struct {
	err   error
	calls int
}

func (f *fakeMarkup) Render(name, date string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("<html>%s - %s</html>", name, date), nil
}

type fakeGenerator struct {
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, markup string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

type fakeUploader struct {
	err     error
	objects map[string][]byte
}

func (f *fakeUploader) Upload(ctx context.Context, pdf []byte, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[id+".pdf"] = pdf
	return fmt.Sprintf("https://cdn.test/summit24/%s.pdf", id), nil
}

type fakeMailer struct {
	err    error
	sentTo string
	sent   int
}

func (f *fakeMailer) SendCertificate(ctx context.Context, toEmail, attachmentURL string) error {
	f.sent++
	f.sentTo = toEmail
	if f.err != nil {
		return f.err
	}
	return nil
}

func newTestService(m *fakeMarkup, g *fakeGenerator, u *fakeUploader, c *fakeMailer) *Service {
	return NewService(m, g, u, c, zap.NewNop().Sugar())
}

func TestGenerateSuccess(t *testing.T) {
	m, g, u, c := &fakeMarkup{}, &fakeGenerator{}, &fakeUploader{}, &fakeMailer{}
	s := newTestService(m, g, u, c)

	url, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)

	require.Equal(t, "https://cdn.test/summit24/abc123.pdf", url)
	require.Contains(t, url, "abc123.pdf")
	require.Equal(t, 1, m.calls)
	require.Equal(t, 1, g.calls)
	require.Contains(t, u.objects, "abc123.pdf")
	require.Equal(t, 1, c.sent)
	require.Equal(t, "maria@example.com", c.sentTo)
}

func TestGenerateTemplateFailureStopsPipeline(t *testing.T) {
	m := &fakeMarkup{err: errors.New("template missing")}
	g, u, c := &fakeGenerator{}, &fakeUploader{}, &fakeMailer{}
	s := newTestService(m, g, u, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageTemplate, stageErr.Stage)

	require.Zero(t, g.calls, "pdf generator must not run after template failure")
	require.Empty(t, u.objects, "nothing must be uploaded after template failure")
	require.Zero(t, c.sent, "no email must be sent after template failure")
}

func TestGeneratePdfFailureStopsPipeline(t *testing.T) {
	g := &fakeGenerator{err: errors.New("chrome crashed")}
	u, c := &fakeUploader{}, &fakeMailer{}
	s := newTestService(&fakeMarkup{}, g, u, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageRender, stageErr.Stage)
	require.Empty(t, u.objects)
	require.Zero(t, c.sent)
}

func TestGenerateUploadFailureStopsPipeline(t *testing.T) {
	u := &fakeUploader{err: errors.New("bucket unavailable")}
	c := &fakeMailer{}
	s := newTestService(&fakeMarkup{}, &fakeGenerator{}, u, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageUpload, stageErr.Stage)
	require.Zero(t, c.sent)
}

func TestGenerateDeliveryFailureKeepsUpload(t *testing.T) {
	u := &fakeUploader{}
	c := &fakeMailer{err: errors.New("provider down")}
	s := newTestService(&fakeMarkup{}, &fakeGenerator{}, u, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageDeliver, stageErr.Stage)

	// No rollback: the object stays reachable even though the email failed.
	require.Contains(t, u.objects, "abc123.pdf")
}

func TestGenerateFetchFailure(t *testing.T) {
	c := &fakeMailer{err: &mailer.FetchError{URL: "https://cdn.test/x.pdf", Err: errors.New("status 404")}}
	s := newTestService(&fakeMarkup{}, &fakeGenerator{}, &fakeUploader{}, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageFetch, stageErr.Stage)
}

func TestGenerateSuppressedRecipientStillFails(t *testing.T) {
	u := &fakeUploader{}
	c := &fakeMailer{err: fmt.Errorf("%w: bounced before", mailer.ErrSuppressed)}
	s := newTestService(&fakeMarkup{}, &fakeGenerator{}, u, c)

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})
	require.Error(t, err)
	require.True(t, errors.Is(err, mailer.ErrSuppressed))

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageDeliver, stageErr.Stage)
	require.Contains(t, u.objects, "abc123.pdf")
}

func TestGenerateOverwritesSameId(t *testing.T) {
	u := &fakeUploader{}
	s := newTestService(&fakeMarkup{}, &fakeGenerator{}, u, &fakeMailer{})

	_, err := s.Generate(context.Background(), Request{ID: "abc123", Name: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), Request{ID: "abc123", Name: "João", Email: "joao@example.com"})
	require.NoError(t, err)

	require.Len(t, u.objects, 1, "same id must overwrite, not duplicate")
}

func TestPreviewRendersOnly(t *testing.T) {
	m, g, u, c := &fakeMarkup{}, &fakeGenerator{}, &fakeUploader{}, &fakeMailer{}
	s := newTestService(m, g, u, c)

	markup, err := s.Preview("Maria")
	require.NoError(t, err)
	require.Contains(t, markup, "Maria")

	require.Zero(t, g.calls)
	require.Empty(t, u.objects)
	require.Zero(t, c.sent)
}

func TestPreviewTemplateFailure(t *testing.T) {
	m := &fakeMarkup{err: errors.New("template missing")}
	s := newTestService(m, &fakeGenerator{}, &fakeUploader{}, &fakeMailer{})

	_, err := s.Preview("Maria")

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageTemplate, stageErr.Stage)
}
