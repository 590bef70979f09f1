package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "resources/types/models.d.ts", cfg.OutputPath)
	assert.False(t, cfg.IncludeCounts)
	assert.False(t, cfg.IncludeJsonLd)
	assert.Equal(t, []string{"models"}, cfg.ModelSources)
}

func TestLoadFromConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	wd, err := os.Getwd()
	require.NoError(t, err)

	content := `output_path: web/types/models.d.ts
include_counts: true
include_jsonld: true
model_sources:
  - app/models
  - domain
overrides:
  "?status": "'active'|'archived'"
  "Post.meta": "@app/types|Meta"
database_url: "postgres://localhost/app"
`
	require.NoError(t, afero.WriteFile(fs, filepath.Join(wd, ".modelts.yaml"), []byte(content), 0o644))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "web/types/models.d.ts", cfg.OutputPath)
	assert.True(t, cfg.IncludeCounts)
	assert.True(t, cfg.IncludeJsonLd)
	assert.Equal(t, []string{"app/models", "domain"}, cfg.ModelSources)
	assert.Equal(t, "'active'|'archived'", cfg.Overrides["?status"])
	// Override keys are case sensitive; they must not pass through viper's
	// key lowercasing.
	assert.Equal(t, "@app/types|Meta", cfg.Overrides["Post.meta"])
	assert.Equal(t, "postgres://localhost/app", cfg.DatabaseURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MODELTS_OUTPUT_PATH", "env/models.d.ts")
	t.Setenv("MODELTS_INCLUDE_COUNTS", "true")

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "env/models.d.ts", cfg.OutputPath)
	assert.True(t, cfg.IncludeCounts)
}

func TestLoadDatabaseURLFallsBackToPlainEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://root@localhost/app")

	cfg, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, "mysql://root@localhost/app", cfg.DatabaseURL)
}
