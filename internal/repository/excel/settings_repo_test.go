package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/domain"
)

func TestSettingsRepoDefaultsWhenAbsent(t *testing.T) {
	repo, err := NewSettingsRepo(t.TempDir())
	require.NoError(t, err)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsRepoRoundTrip(t *testing.T) {
	repo, err := NewSettingsRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	settings := domain.DefaultSettings()
	settings.UseAIParsing = true
	settings.DistrictOptions = []string{"Nimman", "Old City"}
	require.NoError(t, repo.Save(ctx, settings))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.UseAIParsing)
	assert.Equal(t, []string{"Nimman", "Old City"}, loaded.DistrictOptions)
}

func TestSettingsRepoMergesDefaultsIntoPartialFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewSettingsRepo(dir)
	require.NoError(t, err)

	// A file written by an older version only knows about the AI toggle.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"use_ai_parsing": true}`), 0o644))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.UseAIParsing)
	assert.Equal(t, domain.DefaultSettings().DistrictOptions, loaded.DistrictOptions)
}
