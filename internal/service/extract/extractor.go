// Package extract fetches a product's source URL and turns it into
// text the description generator can summarize: Markdown for HTML
// pages, plain text for PDFs.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"

	"katalog/internal/domain/services"
)

const fetchTimeout = 20 * time.Second

// maxFetchBytes bounds how much of a remote document is read.
const maxFetchBytes = 20 << 20

// Extractor implements the ContentExtractor interface. Failures yield
// an empty string, mirroring the downstream contract: description
// generation has its own fallback for missing source text, and a bad
// link should not abort product creation.
type Extractor struct {
	client    *http.Client
	converter *md.Converter
	logger    *slog.Logger
}

// New creates an Extractor with a bounded-timeout HTTP client.
func New(logger *slog.Logger) services.ContentExtractor {
	return &Extractor{
		client:    &http.Client{Timeout: fetchTimeout},
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

// Extract fetches the link and returns its readable content.
func (e *Extractor) Extract(ctx context.Context, link string) string {
	if link == "" {
		return ""
	}

	var (
		text string
		err  error
	)
	if strings.HasSuffix(strings.ToLower(link), ".pdf") {
		text, err = e.extractPDF(ctx, link)
	} else {
		text, err = e.extractHTML(ctx, link)
	}
	if err != nil {
		e.logger.Warn("content extraction failed", "link", link, "error", err)
		return ""
	}

	return strings.TrimSpace(text)
}

// extractHTML strips non-content tags and converts the remaining
// document to Markdown, which keeps headings and lists for the
// summarizer.
func (e *Extractor) extractHTML(ctx context.Context, link string) (string, error) {
	body, err := e.fetch(ctx, link)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	markdown, err := e.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	return markdown, nil
}

// extractPDF downloads the file to a temp path and pulls page text
// through MuPDF.
func (e *Extractor) extractPDF(ctx context.Context, link string) (string, error) {
	body, err := e.fetch(ctx, link)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "katalog-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	doc, err := fitz.New(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", page, err)
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

func (e *Extractor) fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
