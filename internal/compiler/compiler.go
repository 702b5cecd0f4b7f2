package compiler

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/telemetry"
)

// Compiler превращает сырой граф (узлы + рёбра) в валидированный
// Blueprint или в список диагностик.
//
// Каталог типов узлов — явная зависимость: компилятор читает его,
// но никогда не изменяет.
type Compiler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Config — конфигурация Compiler.
type Config struct {
	// Catalog — справочник типов узлов. Обязателен.
	Catalog *catalog.Catalog

	// Logger — логгер. Если nil, используется slog.Default().
	Logger *slog.Logger
}

// New создаёт новый Compiler.
func New(cfg Config) *Compiler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{
		catalog: cfg.Catalog,
		logger:  logger,
	}
}

// CompileRequest — запрос на компиляцию графа.
type CompileRequest struct {
	// Nodes — узлы графа.
	Nodes []domain.GraphNode

	// Edges — рёбра графа.
	Edges []domain.GraphEdge

	// Name — имя workflow.
	Name string

	// Description — описание workflow.
	Description string

	// WorkflowID — идентификатор сохранённого workflow (опционально).
	WorkflowID uuid.UUID

	// Version — версия workflow (опционально).
	Version int

	// CreatedBy — автор запроса (опционально).
	CreatedBy string
}

// Compile выполняет полный конвейер компиляции:
// parse → validate → normalize → toposort → assemble.
//
// Никогда не возвращает Go-ошибок для невалидного графа: все проблемы
// приходят как диагностики в CompilationResult. Каждая стадия
// прерывает конвейер, если нашла ошибки.
func (c *Compiler) Compile(req CompileRequest) *domain.CompilationResult {
	// 1. Parse: карта узлов по ID, проверка пустых и дублирующихся ID.
	nodesByID, diags := c.parse(req.Nodes)
	if hasErrors(diags) {
		return failure(diags)
	}

	// 2. Validate: типы, порты, совместимость, писатели, источники.
	diags = append(diags, c.validate(req.Nodes, req.Edges, nodesByID)...)
	if hasErrors(diags) {
		return failure(diags)
	}

	// 3. Normalize: params без UI-полей, каталожные defaults, соединения.
	bpNodes := c.normalizeNodes(req.Nodes)
	conns := materializeConnections(req.Edges)

	// 4. Toposort (алгоритм Кана, in-degree с учётом кратности рёбер).
	order, cycleDiag := topoSort(bpNodes, conns)
	if cycleDiag != nil {
		diags = append(diags, *cycleDiag)
		return failure(diags)
	}

	// 5. Assemble: результаты workflow из входов терминальных узлов.
	outputs := c.assembleOutputs(req.Nodes, conns)

	bp := &domain.Blueprint{
		ID:              uuid.New(),
		WorkflowID:      req.WorkflowID,
		Version:         req.Version,
		Name:            req.Name,
		Description:     req.Description,
		CreatedBy:       req.CreatedBy,
		Nodes:           bpNodes,
		Connections:     conns,
		WorkflowOutputs: outputs,
		ExecutionOrder:  order,
		CompiledAt:      time.Now(),
	}

	c.logger.Debug("graph compiled",
		"name", req.Name,
		"nodes", len(bp.Nodes),
		"connections", len(bp.Connections),
		"outputs", len(bp.WorkflowOutputs),
	)

	telemetry.ObserveCompilation("success")

	return &domain.CompilationResult{
		Success:     true,
		Blueprint:   bp,
		Diagnostics: diags,
	}
}

// parse строит карту узлов по ID.
func (c *Compiler) parse(nodes []domain.GraphNode) (map[string]*domain.GraphNode, []domain.CompilationDiagnostic) {
	var diags []domain.CompilationDiagnostic

	if len(nodes) == 0 {
		diags = append(diags, errorDiag("workflow must contain at least one node", "", ""))
		return nil, diags
	}

	byID := make(map[string]*domain.GraphNode, len(nodes))
	for i := range nodes {
		node := &nodes[i]

		if node.ID == "" {
			diags = append(diags, errorDiag("node has empty id", "", "id"))
			continue
		}
		if _, exists := byID[node.ID]; exists {
			diags = append(diags, errorDiag("duplicate node id: "+node.ID, node.ID, "id"))
			continue
		}
		byID[node.ID] = node
	}

	return byID, diags
}

// assembleOutputs собирает WorkflowOutput'ы: для каждого терминального
// узла каждый его подключённый вход объявляется результатом workflow,
// указывающим на upstream (узел, выход).
//
// Ключ результата — имя входного порта; при коллизии между несколькими
// терминальными узлами ключ квалифицируется ID узла.
func (c *Compiler) assembleOutputs(nodes []domain.GraphNode, conns []domain.BlueprintConnection) []domain.WorkflowOutput {
	outputs := make([]domain.WorkflowOutput, 0)
	seen := make(map[string]bool)

	for i := range nodes {
		node := &nodes[i]

		spec, ok := c.catalog.Lookup(node.Type)
		if !ok || !spec.Terminal {
			continue
		}

		for _, conn := range conns {
			if conn.ToNode != node.ID {
				continue
			}

			key := conn.ToInput
			if seen[key] {
				key = conn.ToNode + "." + conn.ToInput
			}
			seen[key] = true

			outputs = append(outputs, domain.WorkflowOutput{
				Key:        key,
				FromNode:   conn.FromNode,
				FromOutput: conn.FromOutput,
			})
		}
	}

	return outputs
}

// materializeConnections превращает валидные рёбра в соединения blueprint.
func materializeConnections(edges []domain.GraphEdge) []domain.BlueprintConnection {
	conns := make([]domain.BlueprintConnection, 0, len(edges))
	for _, e := range edges {
		conns = append(conns, domain.BlueprintConnection{
			FromNode:   e.Source,
			FromOutput: e.SourceHandle,
			ToNode:     e.Target,
			ToInput:    e.TargetHandle,
		})
	}
	return conns
}

// errorDiag создаёт диагностику уровня error.
func errorDiag(message, nodeID, field string) domain.CompilationDiagnostic {
	return domain.CompilationDiagnostic{
		Level:   domain.DiagnosticError,
		Message: message,
		NodeID:  nodeID,
		Field:   field,
	}
}

// hasErrors проверяет, есть ли среди диагностик ошибки.
func hasErrors(diags []domain.CompilationDiagnostic) bool {
	for _, d := range diags {
		if d.Level == domain.DiagnosticError {
			return true
		}
	}
	return false
}

// failure собирает неуспешный результат компиляции.
func failure(diags []domain.CompilationDiagnostic) *domain.CompilationResult {
	telemetry.ObserveCompilation("failure")
	return &domain.CompilationResult{
		Success:     false,
		Diagnostics: diags,
	}
}
