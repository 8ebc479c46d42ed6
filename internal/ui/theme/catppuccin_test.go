package theme

import (
	"strings"
	"testing"
)

func TestSessionStatusKeepsText(t *testing.T) {
	for _, status := range []string{"completed", "pending", "expired", ""} {
		if got := SessionStatus(status); !strings.Contains(got, status) {
			t.Fatalf("SessionStatus(%q) = %q", status, got)
		}
	}
}
