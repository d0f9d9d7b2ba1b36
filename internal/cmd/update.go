package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/updater"
)

// NewUpdateCommand creates and returns the update subcommand
func NewUpdateCommand() *cobra.Command {
	var download bool
	var apiURL string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer pngseq release is available",
		Long: `Query the GitHub releases feed for the latest pngseq version. When a
newer release exists, its release notes are printed; with --download the
first release asset is saved to the system temp directory for manual
installation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, download, apiURL, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&download, "download", false, "Download the latest release asset to the temp directory")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Override the release API endpoint")
	cmd.Flags().MarkHidden("api-url")
	return cmd
}

// runUpdate checks the release feed and optionally downloads the asset
func runUpdate(cmd *cobra.Command, download bool, apiURL string, output io.Writer) error {
	checker := updater.NewChecker(apiURL)

	release, err := checker.Latest(cmd.Context())
	if err != nil {
		return err
	}

	if !updater.IsNewer(Version, release.Version()) {
		fmt.Fprintf(output, "You are running the latest version (v%s)\n", Version)
		return nil
	}

	fmt.Fprintf(output, "New version available: v%s (current: v%s)\n", release.Version(), Version)
	if release.Body != "" {
		fmt.Fprintf(output, "\n%s\n", updater.RenderNotes(release.Body))
	}

	if !download {
		fmt.Fprintf(output, "\nRun again with --download to fetch the release.\n")
		return nil
	}
	if len(release.Assets) == 0 {
		return updater.ErrNoAssets
	}

	asset := release.Assets[0]
	path, err := checker.Download(cmd.Context(), asset.BrowserDownloadURL, os.TempDir())
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "\nDownloaded %s to %s\n", asset.Name, path)
	fmt.Fprintf(output, "Close pngseq and run the new version to finish updating.\n")
	return nil
}
