package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string       { return http.StatusText(int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestRetryable(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name string
		ctx  context.Context
		err  error
		want bool
	}{
		{"nil", context.Background(), nil, false},
		{"503", context.Background(), statusErr(503), true},
		{"429", context.Background(), statusErr(429), true},
		{"400", context.Background(), statusErr(400), false},
		{"501", context.Background(), statusErr(501), false},
		{"deadline", context.Background(), context.DeadlineExceeded, true},
		{"caller cancelled", cancelled, statusErr(503), false},
		{"plain", context.Background(), errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.ctx, tc.err); got != tc.want {
				t.Fatalf("Retryable=%v want %v", got, tc.want)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	if got := RetryAfter(h, time.Second, 0); got != time.Second {
		t.Fatalf("fallback=%v", got)
	}
	h.Set("Retry-After", "30")
	if got := RetryAfter(h, time.Second, 5*time.Second); got != 5*time.Second {
		t.Fatalf("capped=%v", got)
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := 0; attempt < 4; attempt++ {
		want := 100 * time.Millisecond * time.Duration(1<<attempt)
		got := Backoff(100*time.Millisecond, attempt)
		if got < want*8/10 || got > want*12/10 {
			t.Fatalf("attempt %d: %v outside +/-20%% of %v", attempt, got, want)
		}
	}
}
