package avatar

import (
	"strings"
	"testing"
)

func TestURL_Deterministic(t *testing.T) {
	a := URL("alice@example.com")
	b := URL("  ALICE@example.com ")
	if a == "" || a != b {
		t.Fatalf("expected normalized emails to map to the same URL, got %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected URL %q", a)
	}
}

func TestURL_EmptyEmail(t *testing.T) {
	if got := URL("   "); got != "" {
		t.Fatalf("expected empty URL, got %q", got)
	}
}
