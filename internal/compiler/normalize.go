package compiler

import "github.com/shaiso/Conduit/internal/domain"

// uiFields — служебные поля редактора, не влияющие на семантику узла.
// Отбрасываются при нормализации конфигурации в params.
var uiFields = map[string]bool{
	"position":         true,
	"positionAbsolute": true,
	"selected":         true,
	"dragging":         true,
	"width":            true,
	"height":           true,
	"zIndex":           true,
	"style":            true,
	"sourcePosition":   true,
	"targetPosition":   true,
	"measured":         true,
	"label":            true,
}

// normalizeNodes строит BlueprintNode'ы: параметры без UI-полей,
// каталожные defaults (явные параметры узла имеют приоритет),
// реализация по умолчанию и снимки схем портов.
func (c *Compiler) normalizeNodes(nodes []domain.GraphNode) []domain.BlueprintNode {
	bpNodes := make([]domain.BlueprintNode, 0, len(nodes))

	for i := range nodes {
		node := &nodes[i]

		// Тип гарантированно резолвится: validate уже прошла.
		spec, _ := c.catalog.Lookup(node.Type)

		bpNodes = append(bpNodes, domain.BlueprintNode{
			NodeID:         node.ID,
			Type:           node.Type,
			Implementation: spec.Implementation,
			Params:         normalizeParams(node.Data, spec.DefaultParams),
			InputsSchema:   spec.Inputs,
			OutputsSchema:  spec.Outputs,
		})
	}

	return bpNodes
}

// normalizeParams отбрасывает UI-поля и накладывает конфигурацию узла
// поверх каталожных defaults.
func normalizeParams(data, defaults map[string]any) map[string]any {
	params := make(map[string]any, len(data)+len(defaults))

	for k, v := range defaults {
		params[k] = v
	}
	for k, v := range data {
		if uiFields[k] {
			continue
		}
		params[k] = v
	}

	return params
}
