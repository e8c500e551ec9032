package credentials

import (
	"os"
	"testing"
)

func TestStoreSaveAndGetToken(t *testing.T) {
	s := NewStore()
	if !s.IsAvailable() {
		t.Skip("OS keychain not available, skipping test")
	}
	defer s.DeleteToken()

	testToken := "ghp_test123456789"

	if err := s.SaveToken(testToken); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("failed to get token: %v", err)
	}
	if got != testToken {
		t.Errorf("expected token %s, got %s", testToken, got)
	}
}

func TestStoreDeleteToken(t *testing.T) {
	s := NewStore()
	if !s.IsAvailable() {
		t.Skip("OS keychain not available, skipping test")
	}

	if err := s.SaveToken("ghp_delete_me"); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
	if err := s.DeleteToken(); err != nil {
		t.Fatalf("failed to delete token: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("unexpected error after deletion: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty token after deletion, got %s", got)
	}
}

func TestStoreSaveEmptyToken(t *testing.T) {
	s := NewStore()
	if !s.IsAvailable() {
		t.Skip("OS keychain not available, skipping test")
	}
	if err := s.SaveToken(""); err == nil {
		t.Error("expected error when saving an empty token")
	}
}

func TestResolvePrefersEnvironmentVariable(t *testing.T) {
	s := NewStore()
	old := os.Getenv("GITHUB_TOKEN")
	os.Setenv("GITHUB_TOKEN", "ghp_env_override")
	defer func() {
		if old == "" {
			os.Unsetenv("GITHUB_TOKEN")
		} else {
			os.Setenv("GITHUB_TOKEN", old)
		}
	}()

	token, err := s.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "ghp_env_override" {
		t.Errorf("expected env token, got %s", token)
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", "(not set)"},
		{"short", "ghp_123", "***"},
		{"standard", "ghp_1234567890abcdef", "ghp_...cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.input); got != tt.expected {
				t.Errorf("MaskToken(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
