package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_RootAndLiveness(t *testing.T) {
	e := newEcho()
	h := NewHealthHandler(nil)

	c, rec := newContext(e, http.MethodGet, "/", "", nil)
	if err := h.Root(c); err != nil {
		t.Fatalf("root: %v", err)
	}
	var root map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &root); err != nil {
		t.Fatalf("decode root: %v", err)
	}
	if root["message"] != "Bagibarang ITS API" {
		t.Errorf("root message = %q", root["message"])
	}

	c, rec = newContext(e, http.MethodGet, "/health", "", nil)
	if err := h.Liveness(c); err != nil {
		t.Fatalf("liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var live map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &live); err != nil {
		t.Fatalf("decode liveness: %v", err)
	}
	if live["status"] != "ok" {
		t.Errorf("liveness status = %q", live["status"])
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	e := newEcho()
	h := NewHealthHandler(map[string]DependencyCheck{"mongodb": ok, "redis": ok})
	c, rec := newContext(e, http.MethodGet, "/health/ready", "", nil)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	h = NewHealthHandler(map[string]DependencyCheck{"mongodb": ok, "redis": down})
	c, rec = newContext(e, http.MethodGet, "/health/ready", "", nil)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode readiness: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	if got := resp.Dependencies["mongodb"].Status; got != "ok" {
		t.Errorf("mongodb = %q, want ok", got)
	}
	if got := resp.Dependencies["redis"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Errorf("redis = %+v", got)
	}
}
