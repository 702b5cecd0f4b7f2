package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Conduit/internal/compiler"
)

// CompileGraph компилирует произвольный граф без сохранения.
//
// Невалидный граф — не ошибка HTTP: ответ 200 с success=false и
// диагностиками, так что редактор может подсвечивать проблемы.
// POST /api/v1/compile
func (h *Handler) CompileGraph(w http.ResponseWriter, r *http.Request) {
	var req CompileGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	result := h.compiler.Compile(compiler.CompileRequest{
		Nodes:       req.Nodes,
		Edges:       req.Edges,
		Name:        req.Name,
		Description: req.Description,
	})

	Success(w, CompileGraphResponse{
		Success:     result.Success,
		Blueprint:   result.Blueprint,
		Diagnostics: result.Diagnostics,
	})
}

// ListNodeTypes возвращает каталог доступных типов узлов.
// GET /api/v1/nodes
func (h *Handler) ListNodeTypes(w http.ResponseWriter, r *http.Request) {
	types := h.catalog.Types()

	result := make([]NodeTypeResponse, 0, len(types))
	for _, t := range types {
		spec, ok := h.catalog.Lookup(t)
		if !ok {
			continue
		}
		result = append(result, NodeTypeResponse{
			Type:           t,
			Inputs:         spec.Inputs,
			Outputs:        spec.Outputs,
			Implementation: spec.Implementation,
			DefaultParams:  spec.DefaultParams,
			Terminal:       spec.Terminal,
		})
	}

	List(w, result, len(result))
}
