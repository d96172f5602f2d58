package mailer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchAttachment(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake content")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfBytes)
	}))
	defer srv.Close()

	got, err := FetchAttachment(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, pdfBytes, got)
}

func TestFetchAttachmentNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchAttachment(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, srv.URL, fetchErr.URL)
}

func TestFetchAttachmentUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := FetchAttachment(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestRenderCertificateTemplate(t *testing.T) {
	url := "https://s3.amazonaws.com/download.metricasboss.com.br/summit24/abc123.pdf"

	subject, body, err := renderTemplate(CERTIFICATE_TEMPLATE, certificateMailData{AttachmentURL: url})
	require.NoError(t, err)

	require.Equal(t, "Agora sim, certificado Analytics Summit", subject)
	require.Contains(t, body, url)
	require.Contains(t, body, "Obrigado pela sua participação!")
}

func TestIsSuppressed(t *testing.T) {
	require.True(t, isSuppressed("recipient address is on the suppression list"))
	require.True(t, isSuppressed("Suppressed recipient"))
	require.False(t, isSuppressed("invalid api key"))
	require.False(t, isSuppressed(""))
}
