package engine

import (
	"context"
	"testing"

	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/nodes"
)

// Полный путь: сырой граф -> компилятор -> исполнитель.
func TestExecute_CompiledWorkflow(t *testing.T) {
	c := compiler.New(compiler.Config{Catalog: catalog.Default(), Logger: discardLogger()})

	result := c.Compile(compiler.CompileRequest{
		Name: "greeting",
		Nodes: []domain.GraphNode{
			{ID: "bucket", Type: catalog.TypeTextBucket, Data: map[string]any{
				"texts": []any{"Hello", "World"},
			}},
			{ID: "gen", Type: catalog.TypeTextGeneration},
			{ID: "out", Type: catalog.TypeOutput},
		},
		Edges: []domain.GraphEdge{
			{Source: "bucket", SourceHandle: "texts", Target: "gen", TargetHandle: "prompt"},
			{Source: "gen", SourceHandle: "text", Target: "out", TargetHandle: "result"},
		},
	})
	if !result.Success {
		t.Fatalf("compilation failed: %+v", result.Diagnostics)
	}

	e := New(Config{Registry: nodes.DefaultRegistry(), Logger: discardLogger()})

	run := e.Execute(context.Background(), result.Blueprint)
	if !run.Success {
		t.Fatalf("execution failed: %s", run.Error)
	}

	// Список текстов склеивается в один prompt, default-шаблон
	// text_generation его эхо-копирует.
	if run.WorkflowOutputs["result"] != "Hello\n\nWorld" {
		t.Errorf("unexpected workflow result: %q", run.WorkflowOutputs["result"])
	}
	if len(run.NodeResults) != 3 {
		t.Errorf("expected 3 node results, got %d", len(run.NodeResults))
	}
}

func TestExecute_CompiledWorkflow_DelayCancellation(t *testing.T) {
	c := compiler.New(compiler.Config{Catalog: catalog.Default(), Logger: discardLogger()})

	result := c.Compile(compiler.CompileRequest{
		Name: "slow",
		Nodes: []domain.GraphNode{
			{ID: "bucket", Type: catalog.TypeTextBucket, Data: map[string]any{
				"texts": []any{"x"},
			}},
			{ID: "wait", Type: catalog.TypeDelay, Data: map[string]any{
				"duration_ms": 60_000,
			}},
		},
		Edges: []domain.GraphEdge{
			{Source: "bucket", SourceHandle: "texts", Target: "wait", TargetHandle: "value"},
		},
	})
	if !result.Success {
		t.Fatalf("compilation failed: %+v", result.Diagnostics)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{Registry: nodes.DefaultRegistry(), Logger: discardLogger()})

	run := e.Execute(ctx, result.Blueprint)
	if run.Success {
		t.Fatal("expected failure under cancelled context")
	}
}
