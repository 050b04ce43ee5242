package server

import (
	"net/http/httptest"
	"testing"

	"backend-passiverdi/internal/config"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestRoutesRegistered(t *testing.T) {
	s := NewServer(config.Config{ServerPort: ":0"}, nil, nil)

	// unknown method on a registered path is 405, unknown path is 404
	req := httptest.NewRequest("DELETE", "/tracking/sessions", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 405 {
		t.Fatalf("expected 405 for registered path, got %d", resp.StatusCode)
	}
}
