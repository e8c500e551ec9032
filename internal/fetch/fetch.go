// Package fetch materializes a GitHub repository onto local disk so
// cmd/codegraph scan has a filesystem root to walk. The analyzer itself
// only ever reads a local path; this package exists purely to get one
// there for a CLI user who starts from "owner/repo" instead.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"
)

// Client wraps the GitHub API client with the rate limit codegraph's
// single fetch-at-a-time CLI needs.
type Client struct {
	gh          *github.Client
	rateLimiter *rate.Limiter
}

// NewClient returns a Client authenticated with token (may be empty for
// unauthenticated, rate-limited access to public repos).
func NewClient(token string, requestsPerSecond int) *Client {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &Client{
		gh:          gh,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Result describes where a fetched repository landed on disk.
type Result struct {
	Dir   string
	Ref   string
	Owner string
	Name  string
}

// Fetch resolves owner/name's default branch (or ref, if non-empty),
// downloads its tarball, and extracts it under destDir. destDir must
// already exist; Fetch creates a fresh subdirectory inside it named
// "<owner>-<name>-<ref>".
func (c *Client) Fetch(ctx context.Context, owner, name, ref, destDir string) (*Result, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	if ref == "" {
		repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
		if err != nil {
			return nil, fmt.Errorf("resolve default branch for %s/%s: %w", owner, name, err)
		}
		ref = repo.GetDefaultBranch()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	archiveURL, _, err := c.gh.Repositories.GetArchiveLink(ctx, owner, name, github.Tarball, &github.RepositoryContentGetOptions{Ref: ref}, 3)
	if err != nil {
		return nil, fmt.Errorf("get archive link for %s/%s@%s: %w", owner, name, ref, err)
	}

	outDir := filepath.Join(destDir, fmt.Sprintf("%s-%s-%s", owner, name, sanitizeRef(ref)))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", outDir, err)
	}

	if err := downloadAndExtract(ctx, archiveURL.String(), outDir); err != nil {
		return nil, fmt.Errorf("download %s/%s@%s: %w", owner, name, ref, err)
	}

	return &Result{Dir: outDir, Ref: ref, Owner: owner, Name: name}, nil
}

func sanitizeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", "-")
}

func downloadAndExtract(ctx context.Context, url, destDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar read: %w", err)
		}

		// GitHub tarballs wrap everything in a single top-level
		// "<owner>-<repo>-<sha>/" directory; strip it.
		parts := strings.SplitN(header.Name, "/", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		target := filepath.Join(destDir, filepath.Clean(parts[1]))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("tar entry escapes destination: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", target, err)
			}
			f.Close()
		}
	}
}
