package services

import (
	"context"
)

// ContentExtractor fetches a URL and returns its readable text
// (Markdown for HTML pages, plain text for PDFs). An empty link or a
// fetch failure yields an empty string, not an error - description
// generation has its own fallback for missing source text.
type ContentExtractor interface {
	Extract(ctx context.Context, link string) string
}

// DescriptionGenerator turns scraped source text into a structured
// Markdown product description.
type DescriptionGenerator interface {
	Summarize(ctx context.Context, sourceText string) string
}
