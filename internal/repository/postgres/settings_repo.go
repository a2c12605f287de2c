package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

// settingsRepo stores the settings document as a single JSONB row, keyed by
// a fixed name. Defaults are served until the first save.
type settingsRepo struct {
	db *sqlx.DB
}

const settingsKey = "app_settings"

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Load(ctx context.Context) (domain.Settings, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		"SELECT value FROM app_settings WHERE key = $1", settingsKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("settingsRepo.Load: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("settingsRepo.Load decode: %w", err)
	}
	return settings, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("settingsRepo.Save encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO app_settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		settingsKey, raw)
	if err != nil {
		return fmt.Errorf("settingsRepo.Save: %w", err)
	}
	return nil
}
