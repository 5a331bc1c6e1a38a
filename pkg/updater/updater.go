// Package updater checks GitHub for a newer navshell release.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// LatestReleaseURL is the GitHub API endpoint for the newest release.
const LatestReleaseURL = "https://api.github.com/repos/Dicklesworthstone/navshell/releases/latest"

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdates queries url for the latest release and returns its tag and
// page when it is newer than current. Both are empty when up to date.
func CheckForUpdates(ctx context.Context, url, current string) (string, string, error) {
	// Short timeout: the check must never hold up the command for long.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", "", fmt.Errorf("decoding release: %w", err)
	}

	if compareVersions(rel.TagName, current) > 0 {
		return rel.TagName, rel.HTMLURL, nil
	}
	return "", "", nil
}

// compareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
// Segments compare numerically; a missing segment counts as 0 and a
// non-numeric one falls back to string order.
func compareVersions(v1, v2 string) int {
	a := strings.Split(strings.TrimPrefix(v1, "v"), ".")
	b := strings.Split(strings.TrimPrefix(v2, "v"), ".")
	for i := 0; i < max(len(a), len(b)); i++ {
		sa, sb := "0", "0"
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		switch {
		case errA == nil && errB == nil:
			if na != nb {
				if na > nb {
					return 1
				}
				return -1
			}
		case sa != sb:
			if sa > sb {
				return 1
			}
			return -1
		}
	}
	return 0
}
