package config

const (
	// MaxProductNameLength is the maximum length for product names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProductNameLength = 255

	// MaxLinkLength is the maximum length for product source links.
	MaxLinkLength = 2048

	// MaxReviewLength is the maximum length for a single review.
	MaxReviewLength = 4000

	// MaxQuestionLength is the maximum length for an assistant question.
	// Longer questions add nothing to retrieval and inflate prompts.
	MaxQuestionLength = 2000

	// DescriptionPreviewRunes is how much of a product description is
	// quoted in the grounding context. Descriptions are full Markdown
	// documents; the prompt only needs the leading summary.
	DescriptionPreviewRunes = 600

	// KeywordCandidateLimit caps keyword-scored retrieval results.
	KeywordCandidateLimit = 20

	// VectorCandidateLimit caps embedding-similarity fallback results.
	VectorCandidateLimit = 5

	// MaxSearchTokens caps how many normalized tokens are kept from a
	// question for keyword retrieval.
	MaxSearchTokens = 6

	// FollowUpMaxRunes is the question length (in runes) at or below
	// which a question is treated as a follow-up to the previous turn.
	// Empirically tuned against real chat transcripts; see the
	// assistant package docs for caveats.
	FollowUpMaxRunes = 25
)
