package db

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthBodyHealthy(t *testing.T) {
	stats := &PoolStats{TotalConns: 8, IdleConns: 3, AcquiredConns: 5, MaxConns: 20, Healthy: true}

	status, body := healthBody(stats, nil)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", body["status"])
	}
	if _, ok := body["error"]; ok {
		t.Error("healthy response must not carry an error field")
	}
	if body["pool"] != stats {
		t.Error("expected the pool snapshot in the response body")
	}
}

func TestHealthBodyPingFailure(t *testing.T) {
	stats := &PoolStats{TotalConns: 8, Healthy: true}

	status, body := healthBody(stats, errors.New("connection refused"))

	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
	if body["status"] != "unhealthy" {
		t.Errorf("expected status unhealthy, got %v", body["status"])
	}
	if body["error"] != "connection refused" {
		t.Errorf("expected the ping error in the body, got %v", body["error"])
	}
	if stats.Healthy {
		t.Error("a failed ping must mark the snapshot unhealthy")
	}
}

func TestPoolStatsEmptyPoolIsUnhealthy(t *testing.T) {
	stats := &PoolStats{TotalConns: 0, MaxConns: 20}
	if stats.Healthy {
		t.Error("a pool with zero connections must start unhealthy")
	}
}
