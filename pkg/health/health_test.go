package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	c := NewChecker()

	if c == nil {
		t.Fatal("NewChecker returned nil")
	}
	resp := c.Check()
	if resp.Status != StatusHealthy {
		t.Errorf("empty checker status = %s, want healthy", resp.Status)
	}
	if len(resp.Checks) != 0 {
		t.Errorf("expected no checks, got %d", len(resp.Checks))
	}
}

func TestWorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for i, s := range tt.statuses {
				status := s
				c.Register(string(rune('a'+i)), func() Check { return Check{Status: status} })
			}

			resp := c.Check()
			if resp.Status != tt.want {
				t.Errorf("status = %s, want %s", resp.Status, tt.want)
			}
			if resp.Checks["a"].Name != "a" {
				t.Errorf("unnamed check should take its registration name, got %q", resp.Checks["a"].Name)
			}
		})
	}
}

func TestReadinessSeparateFromHealth(t *testing.T) {
	c := NewChecker()

	called := false
	c.RegisterReadiness("ready", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	c.Check()
	if called {
		t.Error("readiness check should not run for Check()")
	}
	c.CheckReadiness()
	if !called {
		t.Error("readiness check was not run")
	}
}

func TestHistoryCheck(t *testing.T) {
	dir := t.TempDir()

	missing := HistoryCheck(filepath.Join(dir, "absent.json"))()
	if missing.Status != StatusHealthy {
		t.Errorf("missing history status = %s, want healthy", missing.Status)
	}

	isDir := HistoryCheck(dir)()
	if isDir.Status != StatusUnhealthy {
		t.Errorf("directory history status = %s, want unhealthy", isDir.Status)
	}

	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte(`{"anchors":[],"pairs":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	present := HistoryCheck(path)()
	if present.Status != StatusHealthy {
		t.Errorf("present history status = %s, want healthy", present.Status)
	}
	if present.Details["bytes"] != int64(25) {
		t.Errorf("bytes = %v, want 25", present.Details["bytes"])
	}
}

func TestTickCheck(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{"never ticked", time.Time{}, StatusDegraded},
		{"recent", time.Now(), StatusHealthy},
		{"slow", time.Now().Add(-2 * time.Second), StatusDegraded},
		{"stalled", time.Now().Add(-time.Minute), StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := TickCheck(func() (uint64, time.Time) { return 7, tt.at }, time.Second)()
			if check.Status != tt.want {
				t.Errorf("status = %s, want %s (%s)", check.Status, tt.want, check.Message)
			}
		})
	}
}

func TestRouteCheck(t *testing.T) {
	tests := []struct {
		name       string
		hasNearest bool
		state      string
		want       Status
	}{
		{"waiting", false, "no_route", StatusHealthy},
		{"unreachable", true, "no_route", StatusDegraded},
		{"active", true, "route_active", StatusHealthy},
		{"arrived", true, "destination_reached", StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := RouteCheck(func() (bool, string, int) { return tt.hasNearest, tt.state, 2 })()
			if check.Status != tt.want {
				t.Errorf("status = %s, want %s", check.Status, tt.want)
			}
		})
	}
}

func TestHTTPHandlers(t *testing.T) {
	c := NewChecker()
	c.Register("route", func() Check { return Check{Status: StatusDegraded} })
	c.RegisterReadiness("route", func() Check { return Check{Status: StatusDegraded} })

	rec := httptest.NewRecorder()
	c.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("degraded health code = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("decoded status = %s, want degraded", resp.Status)
	}

	rec = httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded readiness code = %d, want 503", rec.Code)
	}

	c.Register("history", func() Check { return Check{Status: StatusUnhealthy} })
	rec = httptest.NewRecorder()
	c.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy code = %d, want 503", rec.Code)
	}
}
