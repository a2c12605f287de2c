package service

import (
	"context"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/port"
)

// ParseService defines the order-text intake contract.
type ParseService interface {
	Parse(ctx context.Context, rawText string) (*domain.ParseResult, error)
	Status(ctx context.Context) domain.ParseStatus
	TestConnection(ctx context.Context) domain.ConnectionCheck
}

type parseService struct {
	parser       *parse.Parser
	settingsRepo port.SettingsRepository
}

// NewParseService creates a ParseService. Settings are loaded per parse
// call so an operator toggle takes effect immediately.
func NewParseService(parser *parse.Parser, settingsRepo port.SettingsRepository) ParseService {
	return &parseService{parser: parser, settingsRepo: settingsRepo}
}

func (s *parseService) Parse(ctx context.Context, rawText string) (*domain.ParseResult, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		// A broken settings store should not take intake down; parse with
		// the defaults instead.
		settings = domain.DefaultSettings()
	}
	return s.parser.Parse(ctx, rawText, settings)
}

func (s *parseService) Status(ctx context.Context) domain.ParseStatus {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		settings = domain.DefaultSettings()
	}
	return s.parser.Status(settings)
}

func (s *parseService) TestConnection(ctx context.Context) domain.ConnectionCheck {
	return s.parser.CheckConnection(ctx)
}
