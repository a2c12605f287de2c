package parse

import (
	"context"
	"log"
	"strings"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

// Parser orchestrates the two extraction branches. When AI parsing is
// enabled and configured it makes exactly one AI attempt and falls back to
// the local extractor on any error; otherwise it runs the local extractor
// directly. Either way the caller always gets a result for non-empty input.
type Parser struct {
	ai port.FieldExtractor
}

// NewParser creates a parse orchestrator. The extractor may be nil, which
// disables the AI branch entirely.
func NewParser(ai port.FieldExtractor) *Parser {
	return &Parser{ai: ai}
}

// Parse extracts order fields from raw order text under the given settings.
func (p *Parser) Parse(ctx context.Context, rawText string, settings domain.Settings) (*domain.ParseResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, domain.ErrEmptyRawText
	}

	local := NewLocalExtractor(settings.DistrictOptions)

	if settings.UseAIParsing && p.ai != nil && p.ai.Available() {
		out, err := p.ai.Extract(ctx, rawText)
		if err == nil {
			normalizeDates(out.Extracted)
			return &domain.ParseResult{
				Extracted:     out.Extracted,
				MissingFields: out.MissingFields,
				Strategy:      domain.ParseStrategyAI,
				AIUsed:        true,
			}, nil
		}
		log.Printf("parse.Parser: AI extraction failed, falling back to local: %v", err)
		fields, missing := local.Extract(rawText)
		normalizeDates(fields)
		return &domain.ParseResult{
			Extracted:     fields,
			MissingFields: missing,
			Strategy:      domain.ParseStrategyLocal,
			AIFailed:      true,
		}, nil
	}

	fields, missing := local.Extract(rawText)
	normalizeDates(fields)
	return &domain.ParseResult{
		Extracted:     fields,
		MissingFields: missing,
		Strategy:      domain.ParseStrategyLocal,
	}, nil
}

// Status reports whether the AI branch can currently run: the operator
// toggle must be on and the extractor must have a credential.
func (p *Parser) Status(settings domain.Settings) domain.ParseStatus {
	return domain.ParseStatus{
		AIAvailable: settings.UseAIParsing && p.ai != nil && p.ai.Available(),
	}
}

// CheckConnection runs the extractor diagnostic round trip.
func (p *Parser) CheckConnection(ctx context.Context) domain.ConnectionCheck {
	if p.ai == nil {
		return domain.ConnectionCheck{OK: false, Error: "AI extractor not configured"}
	}
	return p.ai.CheckConnection(ctx)
}

// normalizeDates rewrites the delivery date into canonical form in place.
// Normalization never empties a field, so missing lists computed before the
// call stay valid.
func normalizeDates(fields domain.Fields) {
	if v, ok := fields.String(domain.FieldDeliveryDate); ok {
		fields.SetString(domain.FieldDeliveryDate, NormalizeDate(v))
	}
}
