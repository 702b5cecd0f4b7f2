package domain

import (
	"time"

	"github.com/google/uuid"
)

// Blueprint — скомпилированный, провалидированный план выполнения.
//
// Создаётся компилятором один раз на вызов Compile и после этого
// не изменяется. Для скомпилированного Blueprint гарантируется:
//   - граф соединений ацикличен;
//   - каждый обязательный вход имеет ровно одно соединение;
//   - ни один вход не имеет двух писателей;
//   - все узлы, порты и типы существуют в каталоге;
//   - каждое соединение совместимо по типу и кардинальности;
//   - узлы-источники не имеют входящих соединений.
type Blueprint struct {
	// ID — идентификатор blueprint (новый на каждую компиляцию).
	ID uuid.UUID `json:"id"`

	// WorkflowID — ссылка на workflow, если компилировалась
	// сохранённая версия. Zero-значение для ad-hoc компиляций.
	WorkflowID uuid.UUID `json:"workflow_id,omitempty"`

	// Version — версия workflow, если применимо.
	Version int `json:"version,omitempty"`

	// Name — имя workflow на момент компиляции.
	Name string `json:"name"`

	// Description — описание workflow.
	Description string `json:"description,omitempty"`

	// CreatedBy — автор запроса на компиляцию.
	CreatedBy string `json:"created_by,omitempty"`

	// Nodes — нормализованные узлы.
	Nodes []BlueprintNode `json:"nodes"`

	// Connections — соединения между портами узлов.
	Connections []BlueprintConnection `json:"connections"`

	// WorkflowOutputs — именованные результаты workflow.
	WorkflowOutputs []WorkflowOutput `json:"workflow_outputs"`

	// ExecutionOrder — один из валидных топологических порядков узлов.
	ExecutionOrder []string `json:"execution_order"`

	// CompiledAt — время компиляции.
	CompiledAt time.Time `json:"compiled_at"`
}

// Node возвращает узел blueprint по ID.
func (b *Blueprint) Node(id string) (*BlueprintNode, bool) {
	for i := range b.Nodes {
		if b.Nodes[i].NodeID == id {
			return &b.Nodes[i], true
		}
	}
	return nil, false
}

// IncomingConnections возвращает соединения, входящие в узел.
func (b *Blueprint) IncomingConnections(nodeID string) []BlueprintConnection {
	var conns []BlueprintConnection
	for _, c := range b.Connections {
		if c.ToNode == nodeID {
			conns = append(conns, c)
		}
	}
	return conns
}

// BlueprintNode — нормализованный узел плана выполнения.
type BlueprintNode struct {
	// NodeID — идентификатор узла из графа.
	NodeID string `json:"node_id"`

	// Type — тип узла.
	Type string `json:"type"`

	// Implementation — идентификатор реализации из каталога.
	Implementation string `json:"implementation,omitempty"`

	// Params — нормализованная конфигурация: параметры из графа
	// без служебных полей редактора, поверх каталожных defaults.
	Params map[string]any `json:"params,omitempty"`

	// InputsSchema — снимок схемы входов на момент компиляции.
	InputsSchema []PortSchema `json:"inputs_schema,omitempty"`

	// OutputsSchema — снимок схемы выходов на момент компиляции.
	OutputsSchema []PortSchema `json:"outputs_schema,omitempty"`
}

// InputSchema возвращает схему входного порта узла по ключу.
func (n *BlueprintNode) InputSchema(key string) (PortSchema, bool) {
	for _, p := range n.InputsSchema {
		if p.Key == key {
			return p, true
		}
	}
	return PortSchema{}, false
}

// OutputSchema возвращает схему выходного порта узла по ключу.
func (n *BlueprintNode) OutputSchema(key string) (PortSchema, bool) {
	for _, p := range n.OutputsSchema {
		if p.Key == key {
			return p, true
		}
	}
	return PortSchema{}, false
}

// BlueprintConnection — соединение выходного порта с входным.
type BlueprintConnection struct {
	// FromNode — ID узла-источника.
	FromNode string `json:"from_node"`

	// FromOutput — ключ выходного порта источника.
	FromOutput string `json:"from_output"`

	// ToNode — ID узла-приёмника.
	ToNode string `json:"to_node"`

	// ToInput — ключ входного порта приёмника.
	ToInput string `json:"to_input"`
}

// WorkflowOutput — объявление именованного результата workflow:
// какой (узел, выход) питает результат с данным ключом.
type WorkflowOutput struct {
	// Key — имя результата.
	Key string `json:"key"`

	// FromNode — ID узла, производящего значение.
	FromNode string `json:"from_node"`

	// FromOutput — ключ выходного порта узла.
	FromOutput string `json:"from_output"`
}
