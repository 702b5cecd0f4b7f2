package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
)

// newCompileTestServer поднимает API только с компилятором и каталогом:
// endpoints компиляции не трогают БД.
func newCompileTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Default()

	h := NewHandler(Config{
		Catalog:  cat,
		Compiler: compiler.New(compiler.Config{Catalog: cat, Logger: logger}),
		Logger:   logger,
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestCompileGraph_ValidWorkflow(t *testing.T) {
	srv := newCompileTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/compile", CompileGraphRequest{
		Name: "test",
		Nodes: []domain.GraphNode{
			{ID: "bucket", Type: catalog.TypeTextBucket, Data: map[string]any{
				"texts": []any{"hi"},
			}},
			{ID: "out", Type: catalog.TypeOutput},
		},
		Edges: []domain.GraphEdge{
			{Source: "bucket", SourceHandle: "texts", Target: "out", TargetHandle: "result"},
		},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var wrapped struct {
		Data CompileGraphResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !wrapped.Data.Success {
		t.Fatalf("expected success, got diagnostics: %+v", wrapped.Data.Diagnostics)
	}
	if wrapped.Data.Blueprint == nil {
		t.Fatal("expected blueprint in response")
	}
	if len(wrapped.Data.Blueprint.ExecutionOrder) != 2 {
		t.Errorf("unexpected execution order: %v", wrapped.Data.Blueprint.ExecutionOrder)
	}
}

// Невалидный граф — HTTP 200 с диагностиками: редактор подсвечивает
// проблемы по ответу, а не по статус-коду.
func TestCompileGraph_InvalidGraphReturns200WithDiagnostics(t *testing.T) {
	srv := newCompileTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/compile", CompileGraphRequest{
		Nodes: []domain.GraphNode{
			{ID: "x", Type: "unknown_type"},
		},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var wrapped struct {
		Data CompileGraphResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if wrapped.Data.Success {
		t.Fatal("expected failure")
	}
	if wrapped.Data.Blueprint != nil {
		t.Error("failed compilation must not include a blueprint")
	}
	if len(wrapped.Data.Diagnostics) == 0 {
		t.Fatal("expected diagnostics")
	}
	if wrapped.Data.Diagnostics[0].Level != domain.DiagnosticError {
		t.Errorf("expected error diagnostic, got %+v", wrapped.Data.Diagnostics[0])
	}
}

func TestCompileGraph_MalformedBody(t *testing.T) {
	srv := newCompileTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/compile", "application/json", bytes.NewReader([]byte("{broken")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListNodeTypes(t *testing.T) {
	srv := newCompileTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/nodes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var wrapped struct {
		Data  []NodeTypeResponse `json:"data"`
		Total int                `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if wrapped.Total != catalog.Default().Size() {
		t.Errorf("expected %d types, got %d", catalog.Default().Size(), wrapped.Total)
	}

	byType := map[string]NodeTypeResponse{}
	for _, nt := range wrapped.Data {
		byType[nt.Type] = nt
	}
	out, ok := byType[catalog.TypeOutput]
	if !ok || !out.Terminal {
		t.Errorf("output type must be present and terminal: %+v", out)
	}
	gen, ok := byType[catalog.TypeTextGeneration]
	if !ok || len(gen.Inputs) != 2 {
		t.Errorf("unexpected text_generation schema: %+v", gen)
	}
}
