package observability

import (
	"context"
	"testing"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		raw  string
		want map[string]string
	}{
		{"", nil},
		{"x-api-key=abc", map[string]string{"x-api-key": "abc"}},
		{" a=1 , b = 2 ,bad, c= ", map[string]string{"a": "1", "b": "2"}},
		{"novalue=", nil},
	}
	for _, tc := range cases {
		got := parseHeaders(tc.raw)
		if len(got) != len(tc.want) {
			t.Fatalf("parseHeaders(%q)=%v want %v", tc.raw, got, tc.want)
		}
		for k, v := range tc.want {
			if got[k] != v {
				t.Fatalf("parseHeaders(%q)[%s]=%q want %q", tc.raw, k, got[k], v)
			}
		}
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0.1, 0: 0.1, 0.5: 0.5, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v want %v", in, got, want)
		}
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
