package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modelts/modelts/cli/internal/config"
	"github.com/modelts/modelts/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .modelts.yaml configuration file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults without prompting")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	ui.PrintHeader("modelts", "Initialize Configuration")

	if exists, _ := afero.Exists(fs, ".modelts.yaml"); exists {
		ui.PrintWarning(".modelts.yaml already exists, leaving it untouched")
		return nil
	}

	cfg := &config.Config{
		OutputPath:    "resources/types/models.d.ts",
		ModelSources:  []string{"models"},
		IncludeCounts: false,
		IncludeJsonLd: false,
	}

	if !initYes {
		questions := []*survey.Question{
			{
				Name: "outputPath",
				Prompt: &survey.Input{
					Message: "Where should the generated file be written?",
					Default: cfg.OutputPath,
				},
				Validate: survey.Required,
			},
			{
				Name: "includeCounts",
				Prompt: &survey.Confirm{
					Message: "Emit <relation>_count fields for collection relations?",
					Default: cfg.IncludeCounts,
				},
			},
			{
				Name: "includeJsonLd",
				Prompt: &survey.Confirm{
					Message: "Emit the JsonLdRawNode auxiliary interface?",
					Default: cfg.IncludeJsonLd,
				},
			},
		}

		answers := struct {
			OutputPath    string `survey:"outputPath"`
			IncludeCounts bool   `survey:"includeCounts"`
			IncludeJsonLd bool   `survey:"includeJsonLd"`
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		cfg.OutputPath = answers.OutputPath
		cfg.IncludeCounts = answers.IncludeCounts
		cfg.IncludeJsonLd = answers.IncludeJsonLd
	}

	data, err := yaml.Marshal(map[string]interface{}{
		"output_path":    cfg.OutputPath,
		"include_counts": cfg.IncludeCounts,
		"include_jsonld": cfg.IncludeJsonLd,
		"model_sources":  cfg.ModelSources,
		"overrides":      map[string]string{},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := afero.WriteFile(fs, ".modelts.yaml", data, 0o644); err != nil {
		return fmt.Errorf("failed to write .modelts.yaml: %w", err)
	}

	ui.PrintSuccess("Created .modelts.yaml")

	if err := writeExampleModel(fs, cfg.ModelSources[0]); err != nil {
		ui.PrintWarning("Could not write example model: %v", err)
	}

	fmt.Println()
	ui.PrintSection("Next Steps")
	ui.PrintList([]string{
		"Register your models, casts, and value objects in Go code",
		"Set DATABASE_URL in .env to enable nullability introspection",
		"Run: modelts generate",
	})
	return nil
}

// writeExampleModel scaffolds a starter model in the configured source
// directory. An existing file is left alone.
func writeExampleModel(fs afero.Fs, dir string) error {
	path := dir + "/user.go"
	if exists, _ := afero.Exists(fs, path); exists {
		return nil
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	const exampleModel = `package models

import "github.com/modelts/modelts/schema"

type User struct{}

func (User) ModelName() string  { return "User" }
func (User) PrimaryKey() string { return "id" }
func (User) Timestamps() bool   { return true }

func (User) Fillable() []string {
	return []string{"name", "email"}
}

func (User) Casts() map[string]string {
	return map[string]string{"email_verified_at": "datetime"}
}
`
	if err := afero.WriteFile(fs, path, []byte(exampleModel), 0o644); err != nil {
		return err
	}
	ui.PrintSuccess("Created %s", path)
	return nil
}
