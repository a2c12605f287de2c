package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/port"
	"github.com/SuperShot3/order-form/internal/service"
	"github.com/SuperShot3/order-form/mocks"
)

const rawOrderText = "Bouquet: Sunny Day\nDelivery date: 03/04/2025\n"

func TestParseServiceHonorsAIToggle(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.UseAIParsing = true

	extracted := domain.Fields{}
	extracted.SetString(domain.FieldBouquetName, "Sunny Day")

	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(true)
	ai.On("Extract", mock.Anything, rawOrderText).Return(&port.ExtractOutput{
		Extracted:     extracted,
		MissingFields: parse.MissingFields(extracted),
	}, nil)

	settingsRepo := new(mocks.MockSettingsRepository)
	settingsRepo.On("Load", mock.Anything).Return(settings, nil)

	svc := service.NewParseService(parse.NewParser(ai), settingsRepo)
	result, err := svc.Parse(context.Background(), rawOrderText)

	require.NoError(t, err)
	assert.True(t, result.AIUsed)
	ai.AssertNumberOfCalls(t, "Extract", 1)
}

func TestParseServiceAIOffByDefault(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)

	settingsRepo := new(mocks.MockSettingsRepository)
	settingsRepo.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil)

	svc := service.NewParseService(parse.NewParser(ai), settingsRepo)
	result, err := svc.Parse(context.Background(), rawOrderText)

	require.NoError(t, err)
	assert.False(t, result.AIUsed)
	ai.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestParseServiceStatusRequiresToggleAndCredential(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(true)

	settingsRepo := new(mocks.MockSettingsRepository)
	settingsRepo.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil).Once()

	svc := service.NewParseService(parse.NewParser(ai), settingsRepo)
	assert.False(t, svc.Status(context.Background()).AIAvailable)

	enabled := domain.DefaultSettings()
	enabled.UseAIParsing = true
	settingsRepo.On("Load", mock.Anything).Return(enabled, nil)
	assert.True(t, svc.Status(context.Background()).AIAvailable)
}

func TestParseServiceStatusSettingsLoadFailure(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)

	settingsRepo := new(mocks.MockSettingsRepository)
	settingsRepo.On("Load", mock.Anything).Return(domain.Settings{}, errors.New("disk gone"))

	// Defaults leave AI parsing off, so status reads unavailable.
	svc := service.NewParseService(parse.NewParser(ai), settingsRepo)
	assert.False(t, svc.Status(context.Background()).AIAvailable)
}

func TestParseServiceSettingsLoadFailureUsesDefaults(t *testing.T) {
	settingsRepo := new(mocks.MockSettingsRepository)
	settingsRepo.On("Load", mock.Anything).Return(domain.Settings{}, errors.New("disk gone"))

	svc := service.NewParseService(parse.NewParser(nil), settingsRepo)
	result, err := svc.Parse(context.Background(), rawOrderText)

	require.NoError(t, err)
	assert.Equal(t, domain.ParseStrategyLocal, result.Strategy)

	name, _ := result.Extracted.String(domain.FieldBouquetName)
	assert.Equal(t, "Sunny Day", name)
}
