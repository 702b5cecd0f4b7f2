package domain

// DiagnosticLevel — уровень диагностики компиляции.
type DiagnosticLevel string

const (
	// DiagnosticError — ошибка: компиляция не может завершиться успешно.
	DiagnosticError DiagnosticLevel = "error"

	// DiagnosticWarning — предупреждение: компиляция продолжается.
	DiagnosticWarning DiagnosticLevel = "warning"
)

// CompilationDiagnostic — структурированная проблема, найденная компилятором.
//
// Компилятор никогда не бросает ошибок для невалидного графа:
// все проблемы возвращаются как диагностики.
type CompilationDiagnostic struct {
	// Level — error или warning.
	Level DiagnosticLevel `json:"level"`

	// Message — описание проблемы.
	Message string `json:"message"`

	// NodeID — узел, к которому относится проблема (если применимо).
	NodeID string `json:"node_id,omitempty"`

	// Field — поле или порт, вызвавшие проблему (если применимо).
	Field string `json:"field,omitempty"`
}

// CompilationResult — результат вызова компилятора.
type CompilationResult struct {
	// Success — true, если ошибок нет и Blueprint построен.
	Success bool `json:"success"`

	// Blueprint — план выполнения. Nil при неуспехе.
	Blueprint *Blueprint `json:"blueprint,omitempty"`

	// Diagnostics — список ошибок и предупреждений.
	Diagnostics []CompilationDiagnostic `json:"diagnostics,omitempty"`
}

// Errors возвращает только диагностики уровня error.
func (r *CompilationResult) Errors() []CompilationDiagnostic {
	var errs []CompilationDiagnostic
	for _, d := range r.Diagnostics {
		if d.Level == DiagnosticError {
			errs = append(errs, d)
		}
	}
	return errs
}
