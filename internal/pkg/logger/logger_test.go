package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"user_hash", "abc-123",
		"openai_api_key", "sk-live",
		"post_id", "p1",
	})
	if len(out) != 6 {
		t.Fatalf("len=%d, want 6", len(out))
	}
	if got, _ := out[1].(string); !strings.HasPrefix(got, "hash:") || strings.Contains(got, "abc-123") {
		t.Fatalf("user_hash not hashed: %q", got)
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", out[3])
	}
	if out[5] != "p1" {
		t.Fatalf("post_id altered: %v", out[5])
	}
}

func TestHashValueStable(t *testing.T) {
	a := HashValue("same")
	b := HashValue("same")
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if HashValue("") != "" {
		t.Fatalf("empty input should hash to empty")
	}
}

func TestSanitizeOddKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"k", "v", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected: %#v", out)
	}
}
