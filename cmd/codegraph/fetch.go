package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codegraph-dev/codegraph/internal/credentials"
	"github.com/codegraph-dev/codegraph/internal/fetch"
)

var (
	fetchRef   string
	fetchDest  string
	fetchLogin bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <owner/repo>",
	Short: "Download a GitHub repository so it can be scanned locally",
	Long: `fetch resolves owner/repo's default branch (or --ref), downloads its
tarball, and extracts it under --dest. A GitHub token is read from the
GITHUB_TOKEN environment variable first, then the OS keychain; pass
--login to prompt for and store a token before fetching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchRef, "ref", "", "branch, tag, or commit to fetch (default: the repository's default branch)")
	fetchCmd.Flags().StringVar(&fetchDest, "dest", ".", "directory to extract the repository into")
	fetchCmd.Flags().BoolVar(&fetchLogin, "login", false, "prompt for a GitHub token and store it in the OS keychain")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store := credentials.NewStore()

	if fetchLogin {
		if _, err := store.PromptAndSave(); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		logger.Info("github token saved to keychain")
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("owner/repo is required unless --login is the only action requested")
	}

	owner, name, err := splitOwnerRepo(args[0])
	if err != nil {
		return err
	}

	token, err := store.Resolve()
	if err != nil {
		return fmt.Errorf("resolve github token: %w", err)
	}
	if token == "" && cfg.GitHub.Token != "" {
		token = cfg.GitHub.Token
	}
	if token == "" {
		logger.Warn("no github token found, continuing unauthenticated (lower rate limit)")
	}

	if err := os.MkdirAll(fetchDest, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", fetchDest, err)
	}

	client := fetch.NewClient(token, cfg.GitHub.RateLimit)
	result, err := client.Fetch(ctx, owner, name, fetchRef, fetchDest)
	if err != nil {
		return fmt.Errorf("fetch %s/%s: %w", owner, name, err)
	}

	logger.WithField("dir", result.Dir).WithField("ref", result.Ref).Info("repository fetched")
	fmt.Println(result.Dir)
	return nil
}

func splitOwnerRepo(arg string) (owner, name string, err error) {
	parts := strings.SplitN(arg, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected <owner>/<repo>, got %q", arg)
	}
	return parts[0], parts[1], nil
}
