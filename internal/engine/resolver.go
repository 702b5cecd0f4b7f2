package engine

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/shaiso/Conduit/internal/domain"
)

// Разделитель при склейке списка текстов в одно значение.
const textJoinSeparator = "\n\n"

// resolveInputs собирает входы узла из выходов уже завершённых
// upstream-узлов и приводит кардинальности.
//
// Отсутствие upstream-узла или ожидаемого ключа в его выходах —
// нарушение контракта и жёсткая ошибка выполнения для этого узла.
func resolveInputs(bp *domain.Blueprint, node *domain.BlueprintNode, produced map[string]map[string]any, logger *slog.Logger) (map[string]any, error) {
	inputs := make(map[string]any)

	for _, conn := range bp.IncomingConnections(node.NodeID) {
		upstream, ok := produced[conn.FromNode]
		if !ok {
			return nil, fmt.Errorf("%w: node %s expects output of node %s which has not run",
				ErrMissingUpstream, node.NodeID, conn.FromNode)
		}
		value, ok := upstream[conn.FromOutput]
		if !ok {
			return nil, fmt.Errorf("%w: node %s did not produce output %q",
				ErrMissingUpstream, conn.FromNode, conn.FromOutput)
		}

		// Кардинальность источника: из схемы upstream-узла, а при её
		// отсутствии — из структуры самого значения.
		fromShape := domain.ShapeSingle
		if upNode, ok := bp.Node(conn.FromNode); ok {
			if port, ok := upNode.OutputSchema(conn.FromOutput); ok {
				fromShape = port.Shape
			} else {
				fromShape = inferShape(value)
			}
		} else {
			fromShape = inferShape(value)
		}

		toPort, ok := node.InputSchema(conn.ToInput)
		if !ok {
			// Компилятор такого не пропускает; значение отдаём как есть.
			inputs[conn.ToInput] = value
			continue
		}

		converted, err := convertShape(value, fromShape, toPort, node.NodeID, logger)
		if err != nil {
			return nil, err
		}
		inputs[conn.ToInput] = converted
	}

	return inputs, nil
}

// convertShape приводит значение к кардинальности входного порта.
//
// List → Single:
//   - для Text все элементы склеиваются через "\n\n", пустой список
//     даёт пустую строку;
//   - для остальных типов берётся первый элемент (с warning, если
//     элементов больше одного); пустой список — ошибка.
//
// Single → List: значение оборачивается в список из одного элемента,
// nil превращается в пустой список.
func convertShape(value any, from domain.Shape, to domain.PortSchema, nodeID string, logger *slog.Logger) (any, error) {
	if from == to.Shape {
		return value, nil
	}

	if from == domain.ShapeList && to.Shape == domain.ShapeSingle {
		list := toList(value)

		if to.Type == domain.TypeText {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				parts = append(parts, stringify(item))
			}
			return strings.Join(parts, textJoinSeparator), nil
		}

		if len(list) == 0 {
			return nil, fmt.Errorf("%w: input %s.%s expects a single %s value",
				ErrEmptyListConversion, nodeID, to.Key, to.Type)
		}
		if len(list) > 1 {
			logger.Warn("list truncated to first element",
				"node_id", nodeID,
				"input", to.Key,
				"discarded", len(list)-1,
			)
		}
		return list[0], nil
	}

	// Single → List.
	if value == nil {
		return []any{}, nil
	}
	return []any{value}, nil
}

// toList приводит значение к []any.
// Значение, не являющееся списком (upstream нарушил схему),
// трактуется как список из одного элемента.
func toList(value any) []any {
	if value == nil {
		return nil
	}
	if list, ok := value.([]any); ok {
		return list
	}
	if _, ok := value.([]byte); ok {
		return []any{value}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			list[i] = rv.Index(i).Interface()
		}
		return list
	}

	return []any{value}
}

// inferShape определяет кардинальность по структуре значения.
func inferShape(value any) domain.Shape {
	if value == nil {
		return domain.ShapeSingle
	}
	switch value.(type) {
	case string, []byte:
		return domain.ShapeSingle
	}

	k := reflect.ValueOf(value).Kind()
	if k == reflect.Slice || k == reflect.Array {
		return domain.ShapeList
	}
	return domain.ShapeSingle
}

// stringify приводит элемент списка к строке для склейки.
func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
