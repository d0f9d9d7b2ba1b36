// Package updater checks GitHub releases for newer pngseq builds and
// downloads release assets. It is strictly an outer collaborator: the
// rename engine neither feeds it nor reads from it, and all endpoints
// are explicit configuration rather than process-wide state.
package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the GitHub latest-release endpoint for pngseq.
const DefaultAPIURL = "https://api.github.com/repos/gouravbhagat20/png-sequence-renamer/releases/latest"

const requestTimeout = 5 * time.Second

// ErrNoAssets indicates the release carries nothing to download.
var ErrNoAssets = errors.New("updater: release has no downloadable assets")

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release mirrors the fields of the GitHub release API response the
// checker consumes.
type Release struct {
	TagName string  `json:"tag_name"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// Version returns the release version with any leading "v" stripped.
func (r *Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Checker queries a release endpoint for update information.
type Checker struct {
	apiURL string
	client *http.Client
}

// NewChecker creates a Checker against apiURL, defaulting to the pngseq
// releases endpoint when empty.
func NewChecker(apiURL string) *Checker {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Checker{
		apiURL: apiURL,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Latest fetches metadata for the most recent release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("check for updates: unexpected status %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}
	if release.TagName == "" {
		return nil, errors.New("updater: release response missing tag_name")
	}
	return &release, nil
}

// Download fetches url into destDir, keeping the asset's filename, and
// returns the saved path.
func (c *Checker) Download(ctx context.Context, url string, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	// Asset downloads can be large; the check timeout would cut them off.
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download update: unexpected status %s", resp.Status)
	}

	name := path.Base(url)
	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("save download: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close download file: %w", err)
	}
	return destPath, nil
}

// IsNewer reports whether latest is a strictly newer version than
// current. Versions compare as dotted segments, numerically where both
// segments are numbers and lexically otherwise; a missing segment counts
// as zero, so "1.2" < "1.2.1".
func IsNewer(current, latest string) bool {
	cur := strings.Split(strings.TrimPrefix(current, "v"), ".")
	lat := strings.Split(strings.TrimPrefix(latest, "v"), ".")

	n := len(cur)
	if len(lat) > n {
		n = len(lat)
	}
	for i := 0; i < n; i++ {
		cs, ls := "0", "0"
		if i < len(cur) {
			cs = cur[i]
		}
		if i < len(lat) {
			ls = lat[i]
		}

		cn, cerr := strconv.Atoi(cs)
		ln, lerr := strconv.Atoi(ls)
		if cerr == nil && lerr == nil {
			if ln != cn {
				return ln > cn
			}
			continue
		}
		if ls != cs {
			return ls > cs
		}
	}
	return false
}
