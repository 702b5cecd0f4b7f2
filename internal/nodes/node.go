package nodes

import "context"

// Executor — интерфейс реализации узла.
//
// Движок не интерпретирует, что именно вычисляет узел: он только
// диспетчеризует вызов через реестр. Реализация получает нормализованные
// параметры узла и уже разрешённые входы, возвращает карту выходов.
// Любая ошибка (включая панику — движок её перехватывает) трактуется
// планировщиком как ошибка узла.
type Executor interface {
	// Name возвращает идентификатор реализации.
	Name() string

	// Execute выполняет узел. Реализация должна наблюдать ctx.Done()
	// для кооперативной отмены.
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Request — входные данные для выполнения узла.
type Request struct {
	// NodeID — идентификатор узла в графе.
	NodeID string

	// NodeType — тип узла из каталога.
	NodeType string

	// Params — нормализованная конфигурация узла (из Blueprint).
	Params map[string]any

	// Inputs — разрешённые входы: ключ порта → значение,
	// уже сконвертированное к объявленной кардинальности.
	Inputs map[string]any
}

// Response — результат выполнения узла.
type Response struct {
	// Outputs — выходные значения: ключ порта → значение.
	Outputs map[string]any
}

// NewResponse создаёт Response с outputs.
func NewResponse(outputs map[string]any) *Response {
	if outputs == nil {
		outputs = make(map[string]any)
	}
	return &Response{Outputs: outputs}
}

// GetParamString извлекает строковый параметр.
func GetParamString(params map[string]any, key string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetParamInt извлекает целочисленный параметр.
// JSON-декодер отдаёт числа как float64.
func GetParamInt(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
