package port

import (
	"context"

	"github.com/SuperShot3/order-form/internal/domain"
)

// SettingsRepository defines the contract for settings persistence. Load
// returns the built-in defaults when nothing has been saved yet.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
