package engine

import "github.com/shaiso/Conduit/internal/domain"

// depGraph — runtime-граф зависимостей для планировщика.
//
// Строится заново на каждое выполнение и нигде не кэшируется.
//
// В отличие от toposort компилятора, считающего in-degree по рёбрам
// с учётом кратности, здесь in-degree — число различных upstream-узлов:
// два соединения из одного узла в разные входы дают одну зависимость.
// Узел готов, когда завершились все его upstream-узлы, а не все рёбра.
type depGraph struct {
	// inDegree — число различных upstream-узлов (узел → счётчик).
	inDegree map[string]int

	// adjacency — downstream-узлы для уведомления о завершении
	// (без дубликатов: один decrement на upstream-узел).
	adjacency map[string][]string
}

// buildDepGraph строит граф зависимостей из blueprint.
func buildDepGraph(bp *domain.Blueprint) *depGraph {
	g := &depGraph{
		inDegree:  make(map[string]int, len(bp.Nodes)),
		adjacency: make(map[string][]string, len(bp.Nodes)),
	}

	for i := range bp.Nodes {
		g.inDegree[bp.Nodes[i].NodeID] = 0
	}

	// seen дедуплицирует пары (from, to).
	seen := make(map[string]bool, len(bp.Connections))
	for _, conn := range bp.Connections {
		key := conn.FromNode + "\x00" + conn.ToNode
		if seen[key] {
			continue
		}
		seen[key] = true

		g.inDegree[conn.ToNode]++
		g.adjacency[conn.FromNode] = append(g.adjacency[conn.FromNode], conn.ToNode)
	}

	return g
}

// roots возвращает узлы без зависимостей в порядке плана выполнения.
func (g *depGraph) roots(executionOrder []string) []string {
	var roots []string
	for _, id := range executionOrder {
		if g.inDegree[id] == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}
