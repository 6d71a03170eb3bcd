package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/readflow/internal/faults"
)

var testConfig = Config{
	MaxRetries:      3,
	InitialDelay:    1 * time.Millisecond,
	BackoffMultiple: 2.0,
	AttemptTimeout:  100 * time.Millisecond,
}

func TestDo_Success(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), testConfig, "test", func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("got %q after %d calls, want \"ok\" after 1", got, calls)
	}
}

func TestDo_RetryableExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), testConfig, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != testConfig.MaxRetries+1 {
		t.Errorf("attempts = %d, want %d", calls, testConfig.MaxRetries+1)
	}
}

func TestDo_ZeroRetries(t *testing.T) {
	calls := 0
	cfg := testConfig
	cfg.MaxRetries = 0
	_, err := Do(context.Background(), cfg, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("attempts = %d, want 1", calls)
	}
}

func TestDo_NonRetryableSingleAttempt(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404} {
		calls := 0
		_, err := Do(context.Background(), testConfig, "test", func(ctx context.Context) (int, error) {
			calls++
			return 0, &faults.StatusError{Status: status}
		})
		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}
		if calls != 1 {
			t.Errorf("status %d: attempts = %d, want 1", status, calls)
		}
	}
}

func TestDo_RecoveryAfterFailure(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), testConfig, "test", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &faults.StatusError{Status: 503}
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" || calls != 3 {
		t.Errorf("got %q after %d calls, want \"recovered\" after 3", got, calls)
	}
}

func TestDo_AttemptTimeout(t *testing.T) {
	cfg := testConfig
	cfg.MaxRetries = 1
	cfg.AttemptTimeout = 5 * time.Millisecond

	calls := 0
	_, err := Do(context.Background(), cfg, "test", func(ctx context.Context) (int, error) {
		calls++
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// The per-attempt deadline classifies as Timeout, which is retryable.
	if calls != 2 {
		t.Errorf("attempts = %d, want 2", calls)
	}
}

func TestDo_OuterCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, testConfig, "test", func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("connection refused")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("attempts = %d, want 1", calls)
	}
}

func TestBackoffDelay_PureExponential(t *testing.T) {
	cfg := Config{InitialDelay: 1 * time.Second, BackoffMultiple: 2.0}

	expected := []time.Duration{
		1 * time.Second, // after attempt 1
		2 * time.Second, // after attempt 2
		4 * time.Second, // after attempt 3
		8 * time.Second, // after attempt 4
	}
	for i, want := range expected {
		if got := backoffDelay(i+1, cfg); got != want {
			t.Errorf("backoffDelay(%d) = %v, want %v", i+1, got, want)
		}
	}
}
