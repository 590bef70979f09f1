package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/modelts/modelts/cli/internal/ui"
)

// latestKnownVersion is the newest release the binary knows about. Release
// automation rewrites it at build time via -ldflags.
var latestKnownVersion = "0.1.0"

// CheckForUpdates compares the running version against the latest known
// release and prints an upgrade hint when behind.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(latestKnownVersion)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestKnownVersion)
		fmt.Printf("\nUpdate with: go install github.com/modelts/modelts/cli@latest\n")
	}

	return nil
}

// GetDownloadURL returns the release download URL for the current platform
func GetDownloadURL(v string) string {
	return fmt.Sprintf("https://github.com/modelts/modelts/releases/download/v%s/modelts-%s-%s", v, runtime.GOOS, runtime.GOARCH)
}
