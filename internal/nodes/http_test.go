package nodes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTP_GetJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	h := NewHTTP()
	resp, err := h.Execute(context.Background(), &Request{
		NodeID: "req",
		Params: map[string]any{"url": srv.URL, "method": "get"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, ok := resp.Outputs["response"].(map[string]any)
	if !ok {
		t.Fatalf("expected response map, got %T", resp.Outputs["response"])
	}
	if out["status_code"] != 200 {
		t.Errorf("expected 200, got %v", out["status_code"])
	}

	body, ok := out["body"].(map[string]any)
	if !ok || body["ok"] != true {
		t.Errorf("expected parsed JSON body, got %v", out["body"])
	}
}

func TestHTTP_PostSerializesBodyInput(t *testing.T) {
	var received string
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	h := NewHTTP()
	resp, err := h.Execute(context.Background(), &Request{
		NodeID: "req",
		Params: map[string]any{"url": srv.URL, "method": "POST"},
		Inputs: map[string]any{"body": map[string]any{"key": "value"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received != `{"key":"value"}` {
		t.Errorf("unexpected request body: %s", received)
	}
	if contentType != "application/json" {
		t.Errorf("expected json content type, got %s", contentType)
	}

	out := resp.Outputs["response"].(map[string]any)
	if out["status_code"] != 201 {
		t.Errorf("expected 201, got %v", out["status_code"])
	}
}

func TestHTTP_NonJSONBodyReturnedAsString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "plain text")
	}))
	defer srv.Close()

	h := NewHTTP()
	resp, err := h.Execute(context.Background(), &Request{
		NodeID: "req",
		Params: map[string]any{"url": srv.URL},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := resp.Outputs["response"].(map[string]any)
	if out["body"] != "plain text" {
		t.Errorf("expected plain body, got %v", out["body"])
	}
}

func TestHTTP_MissingURL(t *testing.T) {
	h := NewHTTP()

	_, err := h.Execute(context.Background(), &Request{NodeID: "req"})
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestHTTP_CustomHeaders(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	h := NewHTTP()
	_, err := h.Execute(context.Background(), &Request{
		NodeID: "req",
		Params: map[string]any{
			"url":     srv.URL,
			"headers": map[string]any{"Authorization": "Bearer token"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer token" {
		t.Errorf("expected header forwarded, got %q", auth)
	}
}

func TestHTTP_ConnectionError(t *testing.T) {
	h := NewHTTP()

	_, err := h.Execute(context.Background(), &Request{
		NodeID: "req",
		Params: map[string]any{"url": "http://127.0.0.1:1"},
	})
	if !errors.Is(err, ErrHTTPRequest) {
		t.Fatalf("expected ErrHTTPRequest, got %v", err)
	}
}
