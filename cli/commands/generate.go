package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/modelts/modelts/cli/internal/config"
	"github.com/modelts/modelts/cli/internal/ui"
	"github.com/modelts/modelts/cli/internal/watch"
	"github.com/modelts/modelts/generator"
	"github.com/modelts/modelts/schema"
	"github.com/modelts/modelts/schema/introspect"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript interfaces from registered models",
	Long: `Generate TypeScript interface declarations from the registered models.

This command will:
- Extract each model's schema (attributes, casts, relations)
- Apply configured field overrides
- Write a single TypeScript declaration file`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateOutput     string
	generateWatch      bool
	generateCounts     bool
	generateJsonLd     bool
	generateSchemaDump string
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output path for the generated file")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch model sources and regenerate on change")
	generateCmd.Flags().BoolVar(&generateCounts, "counts", false, "Emit <relation>_count fields for collection relations")
	generateCmd.Flags().BoolVar(&generateJsonLd, "jsonld", false, "Emit the JsonLdRawNode auxiliary interface")
	generateCmd.Flags().StringVar(&generateSchemaDump, "schema-dump", "", "Also write the normalized schema (JSON, or YAML for .yaml/.yml)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	cfg, err := loadGenerateConfig(cmd, fs)
	if err != nil {
		return err
	}

	if generateWatch {
		return runGenerateWatch(fs, cfg)
	}

	ui.PrintHeader("modelts", "Generate TypeScript Interfaces")
	return generateOnce(fs, cfg)
}

// loadGenerateConfig loads the file/env config, then lets flags the user
// actually passed win over it.
func loadGenerateConfig(cmd *cobra.Command, fs afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = generateOutput
	}
	if cmd.Flags().Changed("counts") {
		cfg.IncludeCounts = generateCounts
	}
	if cmd.Flags().Changed("jsonld") {
		cfg.IncludeJsonLd = generateJsonLd
	}
	if cmd.Flags().Changed("schema-dump") {
		cfg.SchemaDump = generateSchemaDump
	}
	return cfg, nil
}

func generateOnce(fs afero.Fs, cfg *config.Config) error {
	if len(registry.Models()) == 0 {
		return fmt.Errorf("no models registered; register models before calling Execute")
	}

	opts := schema.Options{
		IncludeCounts: cfg.IncludeCounts,
		Overrides:     cfg.Overrides,
	}

	// Column nullability comes from the live database when a connection
	// string is configured. Generation proceeds without it otherwise.
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		provider := introspect.DetectProvider(cfg.DatabaseURL)
		ins, err := introspect.Open(ctx, provider, cfg.DatabaseURL)
		if err != nil {
			ui.PrintWarning("Database introspection unavailable: %v", err)
		} else {
			defer ins.Close()
			opts.Nullability = ins
		}
	}

	builder := schema.NewBuilder(registry, opts)
	schemas := builder.Build()

	gen := generator.New(fs, schemas, registry, builder.Mapper(), builder.Diagnostics(), generator.Options{
		OutputPath:     cfg.OutputPath,
		IncludeJsonLd:  cfg.IncludeJsonLd,
		SchemaDumpPath: cfg.SchemaDump,
	})
	if err := gen.Generate(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if builder.Diagnostics().HasWarnings() {
		fmt.Println()
		fmt.Print(builder.Diagnostics().ToPrettyString())
	}

	absPath, _ := filepath.Abs(cfg.OutputPath)
	ui.PrintSuccess("Generated interfaces for %d models at %s", schemas.Len(), absPath)
	return nil
}

func runGenerateWatch(fs afero.Fs, cfg *config.Config) error {
	ui.PrintHeader("modelts", "Watch Mode")

	callback := func() error {
		ui.PrintInfo("Regenerating...")
		if err := generateOnce(fs, cfg); err != nil {
			ui.PrintError("%v", err)
		}
		return nil
	}

	watcher, err := watch.NewWatcher(cfg.ModelSources, callback)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return err
	}

	ui.PrintInfo("Watching %v for changes. Press Ctrl+C to stop.", cfg.ModelSources)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println()
	ui.PrintInfo("Stopped watching.")
	return nil
}
