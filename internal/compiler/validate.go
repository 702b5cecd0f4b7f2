package compiler

import (
	"fmt"

	"github.com/shaiso/Conduit/internal/domain"
)

// validate проверяет узлы и рёбра графа.
//
// Проверки:
//   - тип каждого узла резолвится через каталог;
//   - оба конца каждого ребра существуют;
//   - handles рёбер — члены схем выходов/входов;
//   - совместимость типов и кардинальностей соединений;
//   - не более одного соединения в один (узел, вход);
//   - каждый обязательный вход подключён;
//   - у узлов-источников нет входящих рёбер.
func (c *Compiler) validate(nodes []domain.GraphNode, edges []domain.GraphEdge, byID map[string]*domain.GraphNode) []domain.CompilationDiagnostic {
	var diags []domain.CompilationDiagnostic

	// Типы узлов.
	for i := range nodes {
		node := &nodes[i]
		if !c.catalog.Has(node.Type) {
			diags = append(diags, errorDiag(
				fmt.Sprintf("unknown node type: %s", node.Type), node.ID, "type"))
		}
	}

	// Рёбра. writers отслеживает занятые (узел, вход) пары.
	writers := make(map[string]bool)

	for _, edge := range edges {
		srcNode, srcOK := byID[edge.Source]
		if !srcOK {
			diags = append(diags, errorDiag(
				fmt.Sprintf("edge references unknown source node: %s", edge.Source),
				edge.Source, "source"))
		}

		tgtNode, tgtOK := byID[edge.Target]
		if !tgtOK {
			diags = append(diags, errorDiag(
				fmt.Sprintf("edge references unknown target node: %s", edge.Target),
				edge.Target, "target"))
		}

		var srcPort, tgtPort domain.PortSchema
		srcResolved, tgtResolved := false, false

		if srcOK {
			if spec, ok := c.catalog.Lookup(srcNode.Type); ok {
				srcPort, srcResolved = spec.OutputSchema(edge.SourceHandle)
				if !srcResolved {
					diags = append(diags, errorDiag(
						fmt.Sprintf("node %s has no output port %q", edge.Source, edge.SourceHandle),
						edge.Source, edge.SourceHandle))
				}
			}
		}

		if tgtOK {
			spec, ok := c.catalog.Lookup(tgtNode.Type)
			if ok {
				if spec.IsSource() {
					diags = append(diags, errorDiag(
						fmt.Sprintf("node %s is a source node and accepts no incoming connections", edge.Target),
						edge.Target, edge.TargetHandle))
				} else {
					tgtPort, tgtResolved = spec.InputSchema(edge.TargetHandle)
					if !tgtResolved {
						diags = append(diags, errorDiag(
							fmt.Sprintf("node %s has no input port %q", edge.Target, edge.TargetHandle),
							edge.Target, edge.TargetHandle))
					}
				}
			}
		}

		// Совместимость проверяется только когда оба конца резолвятся.
		if srcResolved && tgtResolved {
			if !compatibleTypes(srcPort.Type, tgtPort.Type) {
				diags = append(diags, errorDiag(
					fmt.Sprintf("incompatible connection %s.%s (%s) -> %s.%s (%s)",
						edge.Source, edge.SourceHandle, srcPort.Type,
						edge.Target, edge.TargetHandle, tgtPort.Type),
					edge.Target, edge.TargetHandle))
			}
			if !compatibleShapes(srcPort.Shape, tgtPort.Shape) {
				diags = append(diags, errorDiag(
					fmt.Sprintf("incompatible shapes %s.%s (%s) -> %s.%s (%s)",
						edge.Source, edge.SourceHandle, srcPort.Shape,
						edge.Target, edge.TargetHandle, tgtPort.Shape),
					edge.Target, edge.TargetHandle))
			}
		}

		if tgtOK {
			writerKey := edge.Target + "/" + edge.TargetHandle
			if writers[writerKey] {
				diags = append(diags, errorDiag(
					fmt.Sprintf("input %s.%s has more than one incoming connection", edge.Target, edge.TargetHandle),
					edge.Target, edge.TargetHandle))
			}
			writers[writerKey] = true
		}
	}

	// Обязательные входы без соединений.
	for i := range nodes {
		node := &nodes[i]
		spec, ok := c.catalog.Lookup(node.Type)
		if !ok {
			continue
		}
		for _, port := range spec.Inputs {
			if !port.Required {
				continue
			}
			if !writers[node.ID+"/"+port.Key] {
				diags = append(diags, errorDiag(
					fmt.Sprintf("required input %s.%s has no incoming connection", node.ID, port.Key),
					node.ID, port.Key))
			}
		}
	}

	return diags
}

// compatibleTypes проверяет совместимость runtime-типов соединения.
//
// Правила:
//   - типы должны совпадать точно;
//   - VideoRef может питать AudioRef (видео несёт аудиодорожку);
//   - вход типа JSON принимает любой тип.
func compatibleTypes(from, to domain.RuntimeType) bool {
	if to == domain.TypeJSON {
		return true
	}
	if from == to {
		return true
	}
	if from == domain.TypeVideoRef && to == domain.TypeAudioRef {
		return true
	}
	return false
}

// compatibleShapes проверяет совместимость кардинальностей соединения.
//
// Single↔Single и List↔List всегда совместимы; List→Single и Single→List
// тоже — конверсия выполняется в момент выполнения (engine).
func compatibleShapes(from, to domain.Shape) bool {
	switch {
	case from == to:
		return true
	case from == domain.ShapeList && to == domain.ShapeSingle:
		return true
	case from == domain.ShapeSingle && to == domain.ShapeList:
		return true
	default:
		return false
	}
}
