package engine

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shaiso/Conduit/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resolverBlueprint — src -> dst с одним соединением и заданными
// кардинальностями портов.
func resolverBlueprint(fromShape domain.Shape, toType domain.RuntimeType, toShape domain.Shape) *domain.Blueprint {
	return &domain.Blueprint{
		Nodes: []domain.BlueprintNode{
			{
				NodeID: "src",
				Type:   "test_source",
				OutputsSchema: []domain.PortSchema{
					{Key: "out", Type: toType, Shape: fromShape},
				},
			},
			{
				NodeID: "dst",
				Type:   "test_sink",
				InputsSchema: []domain.PortSchema{
					{Key: "in", Type: toType, Shape: toShape},
				},
			},
		},
		Connections: []domain.BlueprintConnection{
			{FromNode: "src", FromOutput: "out", ToNode: "dst", ToInput: "in"},
		},
	}
}

func resolveFor(t *testing.T, bp *domain.Blueprint, value any) map[string]any {
	t.Helper()
	dst, _ := bp.Node("dst")
	produced := map[string]map[string]any{
		"src": {"out": value},
	}
	inputs, err := resolveInputs(bp, dst, produced, discardLogger())
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	return inputs
}

func TestResolveInputs_ShapesMatch(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeSingle, domain.TypeText, domain.ShapeSingle)
	inputs := resolveFor(t, bp, "hello")
	if inputs["in"] != "hello" {
		t.Errorf("expected value passed through, got %v", inputs["in"])
	}
}

func TestResolveInputs_ListToSingleText_Joins(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeList, domain.TypeText, domain.ShapeSingle)
	inputs := resolveFor(t, bp, []any{"Hello", "World"})
	if inputs["in"] != "Hello\n\nWorld" {
		t.Errorf("expected joined text, got %q", inputs["in"])
	}
}

func TestResolveInputs_EmptyListToSingleText_EmptyString(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeList, domain.TypeText, domain.ShapeSingle)
	inputs := resolveFor(t, bp, []any{})
	if inputs["in"] != "" {
		t.Errorf("expected empty string, got %v", inputs["in"])
	}
}

func TestResolveInputs_ListToSingleNonText_FirstElement(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeList, domain.TypeImageRef, domain.ShapeSingle)
	inputs := resolveFor(t, bp, []any{"img-1", "img-2", "img-3"})
	if inputs["in"] != "img-1" {
		t.Errorf("expected first element, got %v", inputs["in"])
	}
}

func TestResolveInputs_EmptyListToSingleNonText_Error(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeList, domain.TypeImageRef, domain.ShapeSingle)
	dst, _ := bp.Node("dst")
	produced := map[string]map[string]any{
		"src": {"out": []any{}},
	}

	_, err := resolveInputs(bp, dst, produced, discardLogger())
	if !errors.Is(err, ErrEmptyListConversion) {
		t.Fatalf("expected ErrEmptyListConversion, got %v", err)
	}
}

func TestResolveInputs_SingleToList_Wraps(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeSingle, domain.TypeText, domain.ShapeList)
	inputs := resolveFor(t, bp, "solo")

	list, ok := inputs["in"].([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", inputs["in"])
	}
	if len(list) != 1 || list[0] != "solo" {
		t.Errorf("expected [solo], got %v", list)
	}
}

func TestResolveInputs_NilSingleToList_EmptyList(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeSingle, domain.TypeText, domain.ShapeList)
	inputs := resolveFor(t, bp, nil)

	list, ok := inputs["in"].([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", inputs["in"])
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
}

func TestResolveInputs_MissingUpstreamNode(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeSingle, domain.TypeText, domain.ShapeSingle)
	dst, _ := bp.Node("dst")

	_, err := resolveInputs(bp, dst, map[string]map[string]any{}, discardLogger())
	if !errors.Is(err, ErrMissingUpstream) {
		t.Fatalf("expected ErrMissingUpstream, got %v", err)
	}
}

func TestResolveInputs_MissingUpstreamOutputKey(t *testing.T) {
	bp := resolverBlueprint(domain.ShapeSingle, domain.TypeText, domain.ShapeSingle)
	dst, _ := bp.Node("dst")
	produced := map[string]map[string]any{
		"src": {"other": "x"},
	}

	_, err := resolveInputs(bp, dst, produced, discardLogger())
	if !errors.Is(err, ErrMissingUpstream) {
		t.Fatalf("expected ErrMissingUpstream, got %v", err)
	}
}

func TestResolveInputs_TypedSliceToList(t *testing.T) {
	// []string от источника приводится к []any поэлементно
	bp := resolverBlueprint(domain.ShapeList, domain.TypeText, domain.ShapeSingle)
	inputs := resolveFor(t, bp, []string{"a", "b"})
	if inputs["in"] != "a\n\nb" {
		t.Errorf("expected joined text, got %q", inputs["in"])
	}
}

func TestConvertShape_NonStringElementsStringified(t *testing.T) {
	port := domain.PortSchema{Key: "in", Type: domain.TypeText, Shape: domain.ShapeSingle}
	got, err := convertShape([]any{1, "two", 3.5}, domain.ShapeList, port, "n", discardLogger())
	if err != nil {
		t.Fatalf("convertShape: %v", err)
	}
	if got != "1\n\ntwo\n\n3.5" {
		t.Errorf("unexpected join result: %q", got)
	}
}

func TestInferShape(t *testing.T) {
	cases := []struct {
		value any
		want  domain.Shape
	}{
		{nil, domain.ShapeSingle},
		{"text", domain.ShapeSingle},
		{[]byte("raw"), domain.ShapeSingle},
		{42, domain.ShapeSingle},
		{[]any{1, 2}, domain.ShapeList},
		{[]string{"a"}, domain.ShapeList},
	}
	for _, tc := range cases {
		if got := inferShape(tc.value); got != tc.want {
			t.Errorf("inferShape(%v): expected %s, got %s", tc.value, tc.want, got)
		}
	}
}
