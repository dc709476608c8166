package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"productbot/assistant/internal/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v
}

func TestLoadDefaultsFromEnvOnly(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-1")

	cfg, err := load(newTestViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, SheetsBackendAPI, cfg.Sheets.Backend)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval())
	require.Len(t, cfg.Tables, 3)

	kinds := make([]domain.TableKind, 0, len(cfg.Tables))
	for _, table := range cfg.Tables {
		assert.Equal(t, "sheet-1", table.SpreadsheetID)
		kinds = append(kinds, table.Kind)
	}
	assert.Equal(t, domain.TableKinds, kinds)
}

func TestLoadFromFile(t *testing.T) {
	v := newTestViper(t, `
telegram:
  token: "42:xyz"
  group_url: "https://t.me/group"
sheets:
  backend: rest
  api_key: key
  spreadsheet_id: shared
tables:
  - name: lessons
    range: "Lessons!A2:C"
    kind: videos
  - range: "Shop!A2:H"
    kind: Catalog
    spreadsheet_id: own
sync:
  interval: 10
  concurrency: 0
`)

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, SheetsBackendREST, cfg.Sheets.Backend)
	assert.Equal(t, "https://t.me/group", cfg.Telegram.GroupURL)
	assert.Equal(t, 10*time.Second, cfg.SyncInterval())
	assert.Equal(t, 1, cfg.Sync.Concurrency)

	require.Len(t, cfg.Tables, 2)
	assert.Equal(t, domain.TableConfig{
		Name:          "lessons",
		SpreadsheetID: "shared",
		Range:         "Lessons!A2:C",
		Kind:          domain.TableKindVideos,
	}, cfg.Tables[0])
	assert.Equal(t, domain.TableConfig{
		Name:          "catalog",
		SpreadsheetID: "own",
		Range:         "Shop!A2:H",
		Kind:          domain.TableKindCatalog,
	}, cfg.Tables[1])
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing token",
			yaml: "sheets:\n  spreadsheet_id: x\n",
		},
		{
			name: "unknown backend",
			yaml: "telegram:\n  token: t\nsheets:\n  backend: csv\n",
		},
		{
			name: "unknown table kind",
			yaml: "telegram:\n  token: t\ntables:\n  - range: A1:B\n    kind: prices\n",
		},
		{
			name: "missing range",
			yaml: "telegram:\n  token: t\ntables:\n  - kind: videos\n",
		},
		{
			name: "non-positive interval",
			yaml: "telegram:\n  token: t\nsync:\n  interval: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(newTestViper(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingTokenIsSentinel(t *testing.T) {
	_, err := load(newTestViper(t, ""))
	assert.ErrorIs(t, err, ErrMissingToken)
}
