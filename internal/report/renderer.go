package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Renderer turns assembled HTML into PDF bytes. Implementations are
// injected so report assembly stays testable without a browser.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// DefaultRenderTimeout bounds a single headless render.
const DefaultRenderTimeout = 30 * time.Second

// ChromiumRenderer renders PDFs by shelling out to a headless Chromium.
type ChromiumRenderer struct {
	Binary  string        // path to the chromium/chrome binary
	Timeout time.Duration // per-render timeout, DefaultRenderTimeout if zero
}

// NewChromiumRenderer creates a renderer for the given browser binary.
func NewChromiumRenderer(binary string) *ChromiumRenderer {
	return &ChromiumRenderer{Binary: binary, Timeout: DefaultRenderTimeout}
}

// RenderPDF writes the HTML to a temp file, prints it to PDF with headless
// Chromium and returns the bytes. The temp directory is removed regardless
// of outcome.
func (r *ChromiumRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultRenderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "report-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "report.html")
	pdfPath := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write report html: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.Binary,
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf="+pdfPath,
		htmlPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error().Err(err).Str("output", string(output)).Msg("Headless PDF render failed")
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered pdf: %w", err)
	}
	return pdf, nil
}
