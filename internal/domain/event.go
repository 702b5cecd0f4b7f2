package domain

import "time"

// EventType — тип события жизненного цикла выполнения.
type EventType string

// События потокового выполнения в каузальном порядке:
// один workflow_start; для каждого фактически запущенного узла один
// node_start и ровно один node_complete или node_error; ровно одно
// терминальное событие workflow_complete или workflow_error.
// Узел, не запущенный из-за раннего прерывания, не порождает событий.
const (
	EventWorkflowStart    EventType = "workflow_start"
	EventNodeStart        EventType = "node_start"
	EventNodeComplete     EventType = "node_complete"
	EventNodeError        EventType = "node_error"
	EventWorkflowComplete EventType = "workflow_complete"
	EventWorkflowError    EventType = "workflow_error"
)

// IsTerminal возвращает true для терминальных событий.
func (t EventType) IsTerminal() bool {
	return t == EventWorkflowComplete || t == EventWorkflowError
}

// ExecutionEvent — событие жизненного цикла выполнения workflow.
type ExecutionEvent struct {
	// Type — тип события.
	Type EventType `json:"type"`

	// Timestamp — время события.
	Timestamp time.Time `json:"timestamp"`

	// NodeID — узел (для node_* событий).
	NodeID string `json:"node_id,omitempty"`

	// NodeType — тип узла (для node_* событий).
	NodeType string `json:"node_type,omitempty"`

	// Outputs — выходы узла (для node_complete).
	Outputs map[string]any `json:"outputs,omitempty"`

	// Error — текст ошибки (для node_error и workflow_error).
	Error string `json:"error,omitempty"`

	// TotalNodes — размер плана выполнения (для workflow_start).
	TotalNodes int `json:"total_nodes,omitempty"`

	// Result — полный итог выполнения (только в терминальном событии).
	Result *WorkflowExecutionResult `json:"result,omitempty"`
}
