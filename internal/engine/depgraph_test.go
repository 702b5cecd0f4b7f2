package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shaiso/Conduit/internal/domain"
)

func depConn(from, to string) domain.BlueprintConnection {
	return domain.BlueprintConnection{FromNode: from, FromOutput: "out", ToNode: to, ToInput: "in"}
}

func TestBuildDepGraph_Chain(t *testing.T) {
	bp := &domain.Blueprint{
		Nodes: []domain.BlueprintNode{
			{NodeID: "a"}, {NodeID: "b"}, {NodeID: "c"},
		},
		Connections: []domain.BlueprintConnection{
			depConn("a", "b"),
			depConn("b", "c"),
		},
		ExecutionOrder: []string{"a", "b", "c"},
	}

	g := buildDepGraph(bp)

	if g.inDegree["a"] != 0 || g.inDegree["b"] != 1 || g.inDegree["c"] != 1 {
		t.Errorf("unexpected in-degrees: %v", g.inDegree)
	}

	roots := g.roots(bp.ExecutionOrder)
	if len(roots) != 1 || roots[0] != "a" {
		t.Errorf("expected roots [a], got %v", roots)
	}
}

// Два соединения из одного upstream в разные входы одного узла —
// одна зависимость: узел готов после одного завершения upstream.
func TestBuildDepGraph_DeduplicatesConnections(t *testing.T) {
	bp := &domain.Blueprint{
		Nodes: []domain.BlueprintNode{
			{NodeID: "src"}, {NodeID: "dst"},
		},
		Connections: []domain.BlueprintConnection{
			{FromNode: "src", FromOutput: "out", ToNode: "dst", ToInput: "first"},
			{FromNode: "src", FromOutput: "out", ToNode: "dst", ToInput: "second"},
		},
		ExecutionOrder: []string{"src", "dst"},
	}

	g := buildDepGraph(bp)

	if g.inDegree["dst"] != 1 {
		t.Errorf("expected deduped in-degree 1, got %d", g.inDegree["dst"])
	}
	if len(g.adjacency["src"]) != 1 {
		t.Errorf("expected single adjacency entry, got %v", g.adjacency["src"])
	}
}

func TestBuildDepGraph_Diamond(t *testing.T) {
	bp := &domain.Blueprint{
		Nodes: []domain.BlueprintNode{
			{NodeID: "a"}, {NodeID: "b"}, {NodeID: "c"}, {NodeID: "d"},
		},
		Connections: []domain.BlueprintConnection{
			depConn("a", "b"),
			depConn("a", "c"),
			depConn("b", "d"),
			depConn("c", "d"),
		},
		ExecutionOrder: []string{"a", "b", "c", "d"},
	}

	g := buildDepGraph(bp)

	if g.inDegree["d"] != 2 {
		t.Errorf("d depends on two distinct upstreams, got in-degree %d", g.inDegree["d"])
	}

	roots := g.roots(bp.ExecutionOrder)
	if len(roots) != 1 || roots[0] != "a" {
		t.Errorf("expected roots [a], got %v", roots)
	}
}

// Компилятор считает in-degree по рёбрам с учётом кратности, runtime-граф —
// по различным upstream-узлам. Пока два соединения в один и тот же вход
// запрещены, порядки согласованы: узел, отпущенный порядком компилятора,
// должен иметь нулевой runtime in-degree к моменту своего хода.
// Свойство проверяется на случайных DAG с фиксированным seed.
func TestDepGraph_AgreesWithEdgeMultiplicityOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 3 + rng.Intn(8)

		var nodes []domain.BlueprintNode
		for i := 0; i < n; i++ {
			nodes = append(nodes, domain.BlueprintNode{NodeID: fmt.Sprintf("n%d", i)})
		}

		// Рёбра только вперёд по индексу — граф ацикличен.
		// Входы различны: многописательство исключено, как у валидации.
		var conns []domain.BlueprintConnection
		for to := 1; to < n; to++ {
			for from := 0; from < to; from++ {
				count := rng.Intn(3)
				for edge := 0; edge < count; edge++ {
					conns = append(conns, domain.BlueprintConnection{
						FromNode:   nodes[from].NodeID,
						FromOutput: "out",
						ToNode:     nodes[to].NodeID,
						ToInput:    fmt.Sprintf("in_%s_%d", nodes[from].NodeID, edge),
					})
				}
			}
		}

		// Порядок Кана по кратности рёбер — как в компиляторе.
		order := kahnByEdgeMultiplicity(nodes, conns)
		if len(order) != n {
			t.Fatalf("trial %d: multiplicity order incomplete: %v", trial, order)
		}

		bp := &domain.Blueprint{Nodes: nodes, Connections: conns, ExecutionOrder: order}
		g := buildDepGraph(bp)

		// Проигрываем порядок компилятора против runtime-графа.
		for _, id := range order {
			if g.inDegree[id] != 0 {
				t.Fatalf("trial %d: node %s released by compiler order but has runtime in-degree %d",
					trial, id, g.inDegree[id])
			}
			for _, next := range g.adjacency[id] {
				g.inDegree[next]--
			}
		}
	}
}

// kahnByEdgeMultiplicity повторяет счёт компилятора: один декремент
// на ребро, а не на upstream-узел.
func kahnByEdgeMultiplicity(nodes []domain.BlueprintNode, conns []domain.BlueprintConnection) []string {
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))

	for i := range nodes {
		inDegree[nodes[i].NodeID] = 0
	}
	for _, c := range conns {
		inDegree[c.ToNode]++
		adjacency[c.FromNode] = append(adjacency[c.FromNode], c.ToNode)
	}

	var queue, order []string
	for i := range nodes {
		if inDegree[nodes[i].NodeID] == 0 {
			queue = append(queue, nodes[i].NodeID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, next := range adjacency[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return order
}

func TestRoots_PreserveExecutionOrder(t *testing.T) {
	bp := &domain.Blueprint{
		Nodes: []domain.BlueprintNode{
			{NodeID: "z"}, {NodeID: "a"}, {NodeID: "m"},
		},
		ExecutionOrder: []string{"z", "a", "m"},
	}

	g := buildDepGraph(bp)
	roots := g.roots(bp.ExecutionOrder)

	want := []string{"z", "a", "m"}
	if len(roots) != len(want) {
		t.Fatalf("expected %d roots, got %v", len(want), roots)
	}
	for i, id := range want {
		if roots[i] != id {
			t.Errorf("roots[%d]: expected %s, got %s", i, id, roots[i])
		}
	}
}
