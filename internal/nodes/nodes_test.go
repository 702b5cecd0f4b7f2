package nodes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// --- Registry ---

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ghost")
	if !errors.Is(err, ErrExecutorNotFound) {
		t.Fatalf("expected ErrExecutorNotFound, got %v", err)
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(NewBucket())

	exec, err := r.Get(ImplBucket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.Name() != ImplBucket {
		t.Errorf("expected %s, got %s", ImplBucket, exec.Name())
	}
	if !r.Has(ImplBucket) || r.Has("ghost") {
		t.Error("Has is inconsistent with Get")
	}
}

func TestDefaultRegistry_LocalImplementations(t *testing.T) {
	r := DefaultRegistry()

	want := []string{ImplBucket, ImplDelay, ImplHTTP, ImplPassthrough, ImplTemplate}
	names := r.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d]: expected %s, got %s", i, n, names[i])
		}
	}
}

// --- Bucket ---

func TestBucket_ParamsBecomeOutputs(t *testing.T) {
	b := NewBucket()

	resp, err := b.Execute(context.Background(), &Request{
		NodeID: "bucket",
		Params: map[string]any{
			"texts": []any{"Hello", "World"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	texts, ok := resp.Outputs["texts"].([]any)
	if !ok || len(texts) != 2 {
		t.Errorf("expected texts list, got %v", resp.Outputs)
	}
}

func TestBucket_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBucket().Execute(ctx, &Request{NodeID: "bucket"})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

// --- Template ---

func TestTemplate_RendersInputs(t *testing.T) {
	tm := NewTemplate()

	resp, err := tm.Execute(context.Background(), &Request{
		NodeID: "gen",
		Params: map[string]any{"template": "Hi, {{ .name }}!"},
		Inputs: map[string]any{"name": "conduit"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outputs["text"] != "Hi, conduit!" {
		t.Errorf("unexpected render: %v", resp.Outputs["text"])
	}
}

func TestTemplate_Funcs(t *testing.T) {
	tm := NewTemplate()

	resp, err := tm.Execute(context.Background(), &Request{
		NodeID: "gen",
		Params: map[string]any{"template": `{{ upper .word }} {{ json .data }}`},
		Inputs: map[string]any{
			"word": "loud",
			"data": map[string]any{"k": "v"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outputs["text"] != `LOUD {"k":"v"}` {
		t.Errorf("unexpected render: %v", resp.Outputs["text"])
	}
}

func TestTemplate_MissingTemplate(t *testing.T) {
	tm := NewTemplate()

	_, err := tm.Execute(context.Background(), &Request{NodeID: "gen"})
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestTemplate_ParseError(t *testing.T) {
	tm := NewTemplate()

	_, err := tm.Execute(context.Background(), &Request{
		NodeID: "gen",
		Params: map[string]any{"template": "{{ .broken"},
	})
	if err == nil || !strings.Contains(err.Error(), "parse template") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

// --- Delay ---

func TestDelay_ZeroDurationPassesValue(t *testing.T) {
	d := NewDelay()

	resp, err := d.Execute(context.Background(), &Request{
		NodeID: "wait",
		Params: map[string]any{"duration_ms": 0},
		Inputs: map[string]any{"value": "x"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outputs["value"] != "x" {
		t.Errorf("expected value passed through, got %v", resp.Outputs)
	}
}

func TestDelay_NegativeDuration(t *testing.T) {
	d := NewDelay()

	_, err := d.Execute(context.Background(), &Request{
		NodeID: "wait",
		Params: map[string]any{"duration_ms": -5},
	})
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestDelay_CancelledDuringWait(t *testing.T) {
	d := NewDelay()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := d.Execute(ctx, &Request{
			NodeID: "wait",
			Params: map[string]any{"duration_ms": 60_000},
		})
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("expected ErrCancelled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("delay did not observe cancellation")
	}
}

// --- Passthrough ---

func TestPassthrough_InputsBecomeOutputs(t *testing.T) {
	p := NewPassthrough()

	resp, err := p.Execute(context.Background(), &Request{
		NodeID: "out",
		Inputs: map[string]any{"result": 42},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outputs["result"] != 42 {
		t.Errorf("expected inputs passed through, got %v", resp.Outputs)
	}
}

// --- Param helpers ---

func TestGetParamInt(t *testing.T) {
	params := map[string]any{
		"int":     7,
		"int64":   int64(8),
		"float64": float64(9), // так числа приходят из JSON
		"string":  "10",
	}

	if got := GetParamInt(params, "int"); got != 7 {
		t.Errorf("int: expected 7, got %d", got)
	}
	if got := GetParamInt(params, "int64"); got != 8 {
		t.Errorf("int64: expected 8, got %d", got)
	}
	if got := GetParamInt(params, "float64"); got != 9 {
		t.Errorf("float64: expected 9, got %d", got)
	}
	if got := GetParamInt(params, "string"); got != 0 {
		t.Errorf("string: expected 0, got %d", got)
	}
	if got := GetParamInt(params, "missing"); got != 0 {
		t.Errorf("missing: expected 0, got %d", got)
	}
}

func TestGetParamString(t *testing.T) {
	params := map[string]any{"s": "value", "n": 5}

	if got := GetParamString(params, "s"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetParamString(params, "n"); got != "" {
		t.Errorf("non-string must yield empty, got %q", got)
	}
}
