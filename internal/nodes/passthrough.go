package nodes

import (
	"context"
	"fmt"
)

// ImplPassthrough — идентификатор реализации passthrough.
const ImplPassthrough = "passthrough"

// Passthrough — реализация терминального узла output.
//
// Отдаёт разрешённые входы как выходы без изменений. Сами результаты
// workflow извлекаются движком из upstream-узлов по WorkflowOutput,
// так что от терминального узла требуется только завершиться успешно.
type Passthrough struct{}

// NewPassthrough создаёт новый Passthrough.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// Name возвращает идентификатор реализации.
func (p *Passthrough) Name() string {
	return ImplPassthrough
}

// Execute пропускает входы на выходы.
func (p *Passthrough) Execute(ctx context.Context, req *Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	default:
	}

	outputs := make(map[string]any, len(req.Inputs))
	for k, v := range req.Inputs {
		outputs[k] = v
	}

	return NewResponse(outputs), nil
}
