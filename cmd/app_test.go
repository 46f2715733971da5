package cmd

import (
	"strings"
	"testing"

	"github.com/finbook/finbook"
)

func TestResolveProfile(t *testing.T) {
	s := finbook.NewStore()
	if err := s.AddUser(finbook.User{Username: "alice"}); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	// An explicit profile wins, even an unknown one: existence is checked
	// by the store operation itself.
	if got, err := resolveProfile(s, "alice", "business"); err != nil || got != "business" {
		t.Errorf("resolveProfile(explicit) = %q, %v, want business", got, err)
	}

	// Without -p, the user's default profile applies.
	if got, err := resolveProfile(s, "alice", ""); err != nil || got != "personal" {
		t.Errorf("resolveProfile(default) = %q, %v, want personal", got, err)
	}

	if _, err := resolveProfile(s, "ghost", ""); err == nil || !strings.Contains(err.Error(), "unknown user") {
		t.Errorf("resolveProfile(unknown user) = %v, want unknown user error", err)
	}
}
