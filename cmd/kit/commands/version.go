// ABOUTME: Version command reporting the build and the supported generation backends
// ABOUTME: --short prints only the release string for scripts
package commands

import (
	"fmt"
	"runtime"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/spf13/cobra"
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

var versionInfo = VersionInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersion records the build stamp injected by main
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the Kit release, build stamp, Go runtime and the default model of each backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if short {
				_, err := fmt.Fprintln(w, versionInfo.Version)
				return err
			}

			fmt.Fprintf(w, "Kit %s (%s, built %s)\n", versionInfo.Version, versionInfo.Commit, versionInfo.Date)
			fmt.Fprintf(w, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintln(w, "Backends:")
			for _, b := range []string{config.BackendGemini, config.BackendOpenAI, config.BackendAnthropic} {
				fmt.Fprintf(w, "  %-10s %s (key: %s)\n", b, config.DefaultModel(b), config.APIKeyEnv(b))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
