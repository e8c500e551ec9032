// Package credentials stores and retrieves the GitHub personal access
// token used by the fetch subcommand, preferring the OS keychain over
// plaintext config.
package credentials

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	keyringService = "codegraph"
	keyringUser    = "default"
	tokenItem      = "github-token"
)

// Store wraps the OS keychain for the single secret this tool manages.
type Store struct {
	logger *slog.Logger
}

// NewStore returns a credential store bound to the default keychain user.
func NewStore() *Store {
	return &Store{logger: slog.Default().With("component", "credentials")}
}

// SaveToken persists token in the OS keychain.
func (s *Store) SaveToken(token string) error {
	if token == "" {
		return fmt.Errorf("github token cannot be empty")
	}
	if err := keyring.Set(keyringService, tokenItem, token); err != nil {
		return fmt.Errorf("save to OS keychain: %w", err)
	}
	s.logger.Info("github token saved to keychain")
	return nil
}

// Token retrieves the stored GitHub token, returning "" (no error) if
// none has been saved.
func (s *Store) Token() (string, error) {
	token, err := keyring.Get(keyringService, tokenItem)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read from OS keychain: %w", err)
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting an absent token is not
// an error.
func (s *Store) DeleteToken() error {
	err := keyring.Delete(keyringService, tokenItem)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete from OS keychain: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keychain backend responds at all —
// false on headless CI systems lacking Secret Service/Credential Manager.
func (s *Store) IsAvailable() bool {
	_, err := keyring.Get(keyringService, "availability-probe")
	if err == keyring.ErrNotFound {
		return true
	}
	return err == nil
}

// Resolve returns the GitHub token to use for a fetch, in order of
// precedence: the GITHUB_TOKEN environment variable, then the keychain.
func (s *Store) Resolve() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	return s.Token()
}

// PromptAndSave reads a token from the controlling terminal without
// echoing it, then saves it to the keychain. Used by `codegraph fetch
// --login`.
func (s *Store) PromptAndSave() (string, error) {
	fmt.Print("Enter GitHub personal access token: ")
	token, err := readSecurely()
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("no token entered")
	}
	if err := s.SaveToken(token); err != nil {
		return "", err
	}
	return token, nil
}

func readSecurely() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return "", fmt.Errorf("stdin is not a terminal")
}

// MaskToken renders token for display: first 4 and last 4 characters,
// the rest replaced by "...".
func MaskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", token[:4], token[len(token)-4:])
}
