package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/modelts/modelts/cli/internal/ui"
	"github.com/modelts/modelts/internal/debug"
	"github.com/modelts/modelts/schema"
)

// registry holds the models the embedding application registered before
// handing control to Execute. Commands read it, never mutate it.
var registry *schema.Registry

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "modelts",
	Short: "Generate TypeScript interfaces from registered models",
	Long: `modelts turns registered model metadata into TypeScript interface
declarations: one interface per model, plus interfaces for the value
objects those models reference.

Models, custom casts, and value objects are registered in Go code; the
generate command extracts their schema and writes a single .d.ts file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.Init(debugFlag)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute runs the CLI against the given registry. The embedding
// application registers its models first, then calls this from main.
func Execute(reg *schema.Registry) error {
	registry = reg
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
	return nil
}
