package parse_test

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
	"github.com/SuperShot3/order-form/mocks"
)

const rawOrder = `Bouquet: Sunny Day — S size
Card message: "Get well soon"
Delivery date: 03/04/2025
`

func aiSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.UseAIParsing = true
	return s
}

func TestParserEmptyInput(t *testing.T) {
	p := parse.NewParser(nil)

	_, err := p.Parse(context.Background(), "   \n\t ", domain.DefaultSettings())
	assert.ErrorIs(t, err, domain.ErrEmptyRawText)
}

func TestParserLocalWhenAIDisabled(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)
	p := parse.NewParser(ai)

	result, err := p.Parse(context.Background(), rawOrder, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.ParseStrategyLocal, result.Strategy)
	assert.False(t, result.AIUsed)
	assert.False(t, result.AIFailed)
	ai.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)

	date, _ := result.Extracted.String(domain.FieldDeliveryDate)
	assert.Equal(t, "2025-04-03", date)
}

func TestParserAISuccess(t *testing.T) {
	extracted := domain.Fields{}
	extracted.SetString(domain.FieldBouquetName, "Sunny Day")
	extracted.SetString(domain.FieldDeliveryDate, "3/4/2025")

	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(true)
	ai.On("Extract", mock.Anything, rawOrder).Return(&port.ExtractOutput{
		Extracted:     extracted,
		MissingFields: parse.MissingFields(extracted),
	}, nil)

	p := parse.NewParser(ai)
	result, err := p.Parse(context.Background(), rawOrder, aiSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.ParseStrategyAI, result.Strategy)
	assert.True(t, result.AIUsed)
	assert.False(t, result.AIFailed)

	date, _ := result.Extracted.String(domain.FieldDeliveryDate)
	assert.Equal(t, "2025-04-03", date)
	ai.AssertNumberOfCalls(t, "Extract", 1)
}

func TestParserAIFailureFallsBackToLocal(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(true)
	ai.On("Extract", mock.Anything, rawOrder).Return(nil, errors.New("upstream 500"))

	p := parse.NewParser(ai)
	result, err := p.Parse(context.Background(), rawOrder, aiSettings())

	// The caller still gets a result; the failure only shows in the flags.
	require.NoError(t, err)
	assert.Equal(t, domain.ParseStrategyLocal, result.Strategy)
	assert.False(t, result.AIUsed)
	assert.True(t, result.AIFailed)

	name, _ := result.Extracted.String(domain.FieldBouquetName)
	assert.Equal(t, "Sunny Day", name)
	ai.AssertNumberOfCalls(t, "Extract", 1)
}

func TestParserAIUnavailableSkipsAttempt(t *testing.T) {
	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(false)

	p := parse.NewParser(ai)
	result, err := p.Parse(context.Background(), rawOrder, aiSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.ParseStrategyLocal, result.Strategy)
	assert.False(t, result.AIFailed)
	ai.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestParserStatus(t *testing.T) {
	assert.False(t, parse.NewParser(nil).Status(aiSettings()).AIAvailable)

	ai := new(mocks.MockFieldExtractor)
	ai.On("Available").Return(true)
	assert.True(t, parse.NewParser(ai).Status(aiSettings()).AIAvailable)

	// A configured credential alone is not enough; the operator toggle
	// must be on too.
	assert.False(t, parse.NewParser(ai).Status(domain.DefaultSettings()).AIAvailable)

	unconfigured := new(mocks.MockFieldExtractor)
	unconfigured.On("Available").Return(false)
	assert.False(t, parse.NewParser(unconfigured).Status(aiSettings()).AIAvailable)
}

func TestParserCheckConnectionWithoutExtractor(t *testing.T) {
	check := parse.NewParser(nil).CheckConnection(context.Background())
	assert.False(t, check.OK)
	assert.NotEmpty(t, check.Error)
}
