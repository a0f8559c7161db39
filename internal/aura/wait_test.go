package aura

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// scriptedStatuses serves GET /instances/{id} responses from a fixed status
// sequence, repeating the last entry once exhausted. An empty status serves
// a 404.
func scriptedStatuses(polls *int, statuses []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i := *polls
		*polls++
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		if statuses[i] == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"data":{"id":"db-1","name":"mydb","tenant_id":"t-1","cloud_provider":"gcp","status":%q,"memory":"8GB"}}`, statuses[i])
	}
}

func waitClient(t *testing.T, polls *int, statuses []string) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/instances/db-1", scriptedStatuses(polls, statuses))
	c, _ := newTestClient(t, mux)
	c.PollInterval = time.Millisecond
	c.WaitTimeout = time.Second
	return c
}

func TestWaitForInstanceRunning(t *testing.T) {
	var polls int
	c := waitClient(t, &polls, []string{"CREATING", "CREATING", "RUNNING"})

	running, err := c.WaitForInstanceRunning(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("WaitForInstanceRunning: %v", err)
	}
	if !running {
		t.Error("running = false, want true")
	}
	if polls != 3 {
		t.Errorf("polls = %d, want 3", polls)
	}
}

func TestWaitForInstanceRunning_Deleting(t *testing.T) {
	var polls int
	c := waitClient(t, &polls, []string{"CREATING", "DELETING"})

	running, err := c.WaitForInstanceRunning(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("WaitForInstanceRunning: %v", err)
	}
	if running {
		t.Error("running = true, want false for DELETING")
	}
	if polls != 2 {
		t.Errorf("polls = %d, want 2", polls)
	}
}

func TestWaitForInstanceRunning_Absent(t *testing.T) {
	var polls int
	c := waitClient(t, &polls, []string{""})

	running, err := c.WaitForInstanceRunning(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("WaitForInstanceRunning: %v", err)
	}
	if running {
		t.Error("running = true, want false for absent instance")
	}
	if polls != 1 {
		t.Errorf("polls = %d, want 1", polls)
	}
}

func TestWaitForInstanceRunning_Timeout(t *testing.T) {
	var polls int
	c := waitClient(t, &polls, []string{"CREATING"})
	c.WaitTimeout = 20 * time.Millisecond

	running, err := c.WaitForInstanceRunning(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("timeout should not be an error, got %v", err)
	}
	if running {
		t.Error("running = true, want false on timeout")
	}
	if polls < 2 {
		t.Errorf("polls = %d, want repeated polling before timeout", polls)
	}
}

func TestWaitForInstanceRunning_ContextCanceled(t *testing.T) {
	var polls int
	c := waitClient(t, &polls, []string{"CREATING"})
	c.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	running, err := c.WaitForInstanceRunning(ctx, "db-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if running {
		t.Error("running = true, want false on cancellation")
	}
}

func TestWaitForInstanceRunning_PollError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/instances/db-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream down")
	})
	c, _ := newTestClient(t, mux)
	c.PollInterval = time.Millisecond
	c.WaitTimeout = time.Second

	running, err := c.WaitForInstanceRunning(context.Background(), "db-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if running {
		t.Error("running = true, want false on poll error")
	}
}
