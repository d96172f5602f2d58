package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// The certificate page is a fixed 720x385 landscape sheet. Chrome's print
// API takes paper size in inches, CSS pixels are 96 per inch. The geometry
// is already landscape so the explicit paper size is passed instead of the
// rotate flag, which would swap the dimensions.
const (
	pageWidthInch  = 720.0 / 96.0
	pageHeightInch = 385.0 / 96.0

	convertTimeout = 120 * time.Second
)

// ChromeGenerator prints markup to PDF through a headless browser. Each call
// launches its own browser process and tears it down when the call returns,
// success or not. Nothing is pooled across requests.
type ChromeGenerator struct {
	execPath string
}

// NewChromeGenerator returns a Generator backed by the browser at execPath.
// An empty execPath resolves chrome/chromium from PATH.
func NewChromeGenerator(execPath string) *ChromeGenerator {
	return &ChromeGenerator{execPath: execPath}
}

func (g *ChromeGenerator) Generate(ctx context.Context, markup string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if g.execPath != "" {
		opts = append(opts, chromedp.ExecPath(g.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(pageWidthInch).
				WithPaperHeight(pageHeightInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print certificate to pdf: %w", err)
	}

	if len(buf) == 0 {
		return nil, errors.New("pdf conversion returned no output")
	}

	if err := api.Validate(bytes.NewReader(buf), nil); err != nil {
		return nil, fmt.Errorf("generated pdf failed validation: %w", err)
	}

	return buf, nil
}
