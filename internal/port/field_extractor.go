package port

import (
	"context"

	"github.com/SuperShot3/order-form/internal/domain"
)

// ExtractOutput is the envelope an AI extraction returns: the fields the
// model found plus the critical fields it could not.
type ExtractOutput struct {
	Extracted     domain.Fields
	MissingFields []domain.Field
}

// FieldExtractor abstracts LLM-based order-text extraction.
type FieldExtractor interface {
	// Available reports whether the extractor is configured to run at all.
	Available() bool
	Extract(ctx context.Context, rawText string) (*ExtractOutput, error)
	// CheckConnection performs a minimal round trip for the diagnostics
	// endpoint. It reports failure in the result rather than an error.
	CheckConnection(ctx context.Context) domain.ConnectionCheck
}
