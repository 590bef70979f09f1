// Package config loads the generation run's configuration from the
// .modelts.yaml file, environment variables, and .env files. The loaded
// Config value is threaded explicitly through the builder and generator;
// nothing reads it ambiently.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// OutputPath is the destination of the generated interface file.
	OutputPath string
	// IncludeCounts toggles synthetic "<field>_count" fields for
	// collection relations.
	IncludeCounts bool
	// IncludeJsonLd toggles the auxiliary JsonLdRawNode interface.
	IncludeJsonLd bool
	// SchemaDump optionally persists the normalized schema for debugging.
	SchemaDump string
	// Overrides maps "?field" or "Model.field" keys to TypeScript type
	// text or import references.
	Overrides map[string]string
	// ModelSources lists directories watched for model changes, beyond
	// the default models directory.
	ModelSources []string
	// DatabaseURL enables column-nullability introspection when set.
	DatabaseURL string
}

// Load reads configuration from .modelts.yaml (working directory, home
// directory, or ~/.config/modelts), MODELTS_* environment variables, and
// .env files.
func Load(fs afero.Fs) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(".modelts")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "modelts"))

	v.SetEnvPrefix("MODELTS")
	v.AutomaticEnv()

	v.SetDefault("output_path", "resources/types/models.d.ts")
	v.SetDefault("include_counts", false)
	v.SetDefault("include_jsonld", false)
	v.SetDefault("model_sources", []string{"models"})

	// A missing config file is fine; defaults and environment cover it.
	_ = v.ReadInConfig()

	// .env then .env.local, the local file taking priority.
	if _, err := fs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := fs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		OutputPath:    v.GetString("output_path"),
		IncludeCounts: v.GetBool("include_counts"),
		IncludeJsonLd: v.GetBool("include_jsonld"),
		SchemaDump:    v.GetString("schema_dump"),
		Overrides:     loadOverrides(fs, v.ConfigFileUsed()),
		ModelSources:  v.GetStringSlice("model_sources"),
		DatabaseURL:   v.GetString("database_url"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// loadOverrides reads the overrides section straight from the config file.
// Viper lowercases map keys, which would corrupt case-sensitive
// "Model.field" override keys.
func loadOverrides(fs afero.Fs, configFile string) map[string]string {
	if configFile == "" {
		return nil
	}
	data, err := afero.ReadFile(fs, configFile)
	if err != nil {
		return nil
	}
	var raw struct {
		Overrides map[string]string `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return raw.Overrides
}

// Save writes the configuration to ~/.config/modelts/.modelts.yaml.
func Save(fs afero.Fs, cfg *Config) error {
	v := viper.New()
	v.SetFs(fs)
	v.Set("output_path", cfg.OutputPath)
	v.Set("include_counts", cfg.IncludeCounts)
	v.Set("include_jsonld", cfg.IncludeJsonLd)
	v.Set("schema_dump", cfg.SchemaDump)
	v.Set("overrides", cfg.Overrides)
	v.Set("model_sources", cfg.ModelSources)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(home, ".config", "modelts")
	if err := fs.MkdirAll(configPath, 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(filepath.Join(configPath, ".modelts.yaml"))
}
