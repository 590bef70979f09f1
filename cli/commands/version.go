package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelts/modelts/cli/internal/update"
	"github.com/modelts/modelts/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var versionFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "Print build metadata as well")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionFull {
		fmt.Println(info.FullString())
	} else {
		fmt.Println(info.String())
	}
	return update.CheckForUpdates(info.Version)
}
