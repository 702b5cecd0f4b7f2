package domain

import "testing"

func TestBlueprint_Node(t *testing.T) {
	bp := &Blueprint{
		Nodes: []BlueprintNode{
			{NodeID: "a", Type: "x"},
			{NodeID: "b", Type: "y"},
		},
	}

	node, ok := bp.Node("b")
	if !ok || node.Type != "y" {
		t.Errorf("expected node b, got %+v", node)
	}
	if _, ok := bp.Node("ghost"); ok {
		t.Error("unknown node must not resolve")
	}
}

func TestBlueprint_IncomingConnections(t *testing.T) {
	bp := &Blueprint{
		Connections: []BlueprintConnection{
			{FromNode: "a", FromOutput: "out", ToNode: "c", ToInput: "left"},
			{FromNode: "b", FromOutput: "out", ToNode: "c", ToInput: "right"},
			{FromNode: "a", FromOutput: "out", ToNode: "d", ToInput: "in"},
		},
	}

	conns := bp.IncomingConnections("c")
	if len(conns) != 2 {
		t.Fatalf("expected 2 incoming connections, got %d", len(conns))
	}
	// Порядок объявления соединений сохраняется
	if conns[0].ToInput != "left" || conns[1].ToInput != "right" {
		t.Errorf("unexpected connections: %+v", conns)
	}

	if got := bp.IncomingConnections("a"); len(got) != 0 {
		t.Errorf("source node must have no incoming connections, got %+v", got)
	}
}
