package assistant

import (
	"encoding/json"
	"regexp"
	"strings"

	"katalog/internal/domain/models"
)

// directivePattern matches the structured block the model is required
// to emit as the last non-whitespace content of its response: a single
// JSON object with one product_ids key holding an array. This is an
// explicit "extract last well-formed block" grammar, not a general
// JSON scanner - anything that deviates is a parse failure, never a
// crash.
var directivePattern = regexp.MustCompile(`\{\s*"product_ids"\s*:\s*\[[^\]]*\]\s*\}\s*$`)

// directive is the wire shape of the trailing block.
type directive struct {
	ProductIDs []int `json:"product_ids"`
}

// ParsedAnswer is the result of splitting a raw model response.
type ParsedAnswer struct {
	// Answer is the human-readable text with the trailing directive
	// removed and whitespace trimmed.
	Answer string

	// Rows are the candidate rows whose IDs appear in the directive,
	// in the original candidate order (not the directive's order).
	Rows []models.CandidateRow

	// ProductIDs are the IDs of Rows, in the same order.
	ProductIDs []int
}

// ParseAnswer extracts the product-ID directive from a raw model
// response and reconciles it against the retrieved candidates.
//
// A missing, empty or malformed directive degrades to "no candidates":
// the model's prose alone is never trusted to imply product matches,
// even when it mentions products by name. Chat must keep working
// through model formatting drift, so nothing here returns an error.
func ParseAnswer(raw string, candidates []models.CandidateRow) ParsedAnswer {
	clean := raw
	var ids []int

	if loc := directivePattern.FindStringIndex(raw); loc != nil {
		var d directive
		if err := json.Unmarshal([]byte(raw[loc[0]:loc[1]]), &d); err == nil {
			ids = d.ProductIDs
		}
		// The detected fragment is stripped even when it failed to
		// parse; leaving half a directive in the prose reads worse
		// than dropping it.
		clean = raw[:loc[0]]
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	parsed := ParsedAnswer{Answer: strings.TrimSpace(clean)}
	for _, row := range candidates {
		if _, ok := wanted[row.ID]; ok {
			parsed.Rows = append(parsed.Rows, row)
			parsed.ProductIDs = append(parsed.ProductIDs, row.ID)
		}
	}
	return parsed
}
