package excel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

// SettingsRepo persists the settings document as a JSON file next to the
// order workbook.
type SettingsRepo struct {
	mu   sync.Mutex
	path string
}

// NewSettingsRepo creates a file-backed SettingsRepository under dataDir.
func NewSettingsRepo(dataDir string) (*SettingsRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &SettingsRepo{path: filepath.Join(dataDir, "settings.json")}, nil
}

var _ port.SettingsRepository = (*SettingsRepo)(nil)

func (r *SettingsRepo) Load(_ context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return settings, nil
}

func (r *SettingsRepo) Save(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}
