package compiler

import (
	"sort"
	"strings"

	"github.com/shaiso/Conduit/internal/domain"
)

// topoSort строит топологический порядок узлов по алгоритму Кана.
//
// In-degree считается по рёбрам с учётом кратности: два соединения из
// одного и того же upstream-узла дают вклад 2. Runtime-граф зависимостей
// (engine) дедуплицирует такие рёбра; результаты совпадают, потому что
// несколько соединений в один и тот же вход запрещены валидацией,
// а декременты здесь тоже идут по рёбрам.
//
// При обнаружении цикла возвращает одну диагностику, перечисляющую
// все узлы с оставшимся положительным in-degree.
func topoSort(nodes []domain.BlueprintNode, conns []domain.BlueprintConnection) ([]string, *domain.CompilationDiagnostic) {
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))

	for i := range nodes {
		inDegree[nodes[i].NodeID] = 0
	}
	for _, conn := range conns {
		inDegree[conn.ToNode]++
		adjacency[conn.FromNode] = append(adjacency[conn.FromNode], conn.ToNode)
	}

	// Затравка очереди в порядке объявления узлов: порядок результата
	// детерминирован для одного и того же входа.
	queue := make([]string, 0, len(nodes))
	for i := range nodes {
		if inDegree[nodes[i].NodeID] == 0 {
			queue = append(queue, nodes[i].NodeID)
		}
	}

	order := make([]string, 0, len(nodes))
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

	if len(order) != len(nodes) {
		// Остаток — как минимум один цикл.
		var stuck []string
		for id, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)

		diag := errorDiag(
			"workflow contains a cycle involving nodes: "+strings.Join(stuck, ", "),
			"", "")
		return nil, &diag
	}

	return order, nil
}
