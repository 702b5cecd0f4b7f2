package domain

// ResultStatus — статус узла в итоговом результате.
//
// Узлы, отменённые из-за чужой ошибки, попадают в результат со статусом
// error и сообщением об отмене. Узлы, которые не успели стартовать,
// в результат не попадают вовсе.
type ResultStatus string

const (
	// ResultCompleted — узел успешно завершён.
	ResultCompleted ResultStatus = "completed"

	// ResultError — узел завершился с ошибкой или был отменён.
	ResultError ResultStatus = "error"
)

// NodeExecutionResult — результат выполнения одного узла.
type NodeExecutionResult struct {
	// NodeID — идентификатор узла.
	NodeID string `json:"node_id"`

	// Status — completed или error.
	Status ResultStatus `json:"status"`

	// Outputs — выходные значения узла (только при completed).
	Outputs map[string]any `json:"outputs,omitempty"`

	// Error — текст ошибки (только при error).
	Error string `json:"error,omitempty"`

	// ExecutionTimeMs — длительность выполнения в миллисекундах.
	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

// WorkflowExecutionResult — итог выполнения workflow.
//
// После выполнения результат целиком передаётся внешнему коллаборатору
// для сохранения (repo); движок формата хранения не знает.
type WorkflowExecutionResult struct {
	// Success — true, если все узлы завершились успешно.
	Success bool `json:"success"`

	// WorkflowOutputs — именованные результаты workflow.
	// Объявленный результат, чей источник не произвёл ожидаемый ключ,
	// молча опускается.
	WorkflowOutputs map[string]any `json:"workflow_outputs,omitempty"`

	// NodeResults — результаты узлов в порядке завершения,
	// не в порядке объявления.
	NodeResults []NodeExecutionResult `json:"node_results"`

	// TotalExecutionTimeMs — общая длительность в миллисекундах.
	TotalExecutionTimeMs int64 `json:"total_execution_time_ms"`

	// Error — верхнеуровневая ошибка: имя первого упавшего узла
	// и его сообщение. Пусто при Success.
	Error string `json:"error,omitempty"`
}

// NodeResult возвращает результат узла по ID.
func (r *WorkflowExecutionResult) NodeResult(nodeID string) (*NodeExecutionResult, bool) {
	for i := range r.NodeResults {
		if r.NodeResults[i].NodeID == nodeID {
			return &r.NodeResults[i], true
		}
	}
	return nil, false
}
