package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := &RetryableError{Err: errors.New("flaky")}
	permanent := errors.New("broken")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, nil, 1, false},
		{"recovers", 2, transient, 3, false},
		{"gives up", 5, transient, 3, true},
		{"permanent", 5, permanent, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("flaky")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("0eNpdata"))
		case "/missing":
			http.NotFound(w, r)
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/big":
			w.Write(make([]byte, 64))
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	body, err := Get(ctx, srv.Client(), srv.URL+"/ok", 1024)
	if err != nil || string(body) != "0eNpdata" {
		t.Errorf("Get(/ok) = %q, %v", body, err)
	}

	_, err = Get(ctx, srv.Client(), srv.URL+"/missing", 1024)
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusNotFound {
		t.Errorf("Get(/missing) error = %v, want 404 StatusError", err)
	}
	if isRetryable(err) {
		t.Error("404 should not be retryable")
	}

	_, err = Get(ctx, srv.Client(), srv.URL+"/down", 1024)
	if !isRetryable(err) {
		t.Errorf("Get(/down) error = %v, want retryable", err)
	}

	_, err = Get(ctx, srv.Client(), srv.URL+"/big", 16)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Get(/big) error = %v, want ErrTooLarge", err)
	}
}
