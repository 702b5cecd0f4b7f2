package nodes

import (
	"context"
	"fmt"
	"time"
)

// ImplDelay — идентификатор реализации delay.
const ImplDelay = "delay"

// Ключ параметра длительности.
const paramDurationMs = "duration_ms"

// Delay — реализация узла delay: пропускает вход "value" на выход
// после заданной паузы. Полезен для rate limiting внешних API.
//
// Параметры:
//
//	{
//	    "duration_ms": 1500
//	}
type Delay struct{}

// NewDelay создаёт новый Delay.
func NewDelay() *Delay {
	return &Delay{}
}

// Name возвращает идентификатор реализации.
func (d *Delay) Name() string {
	return ImplDelay
}

// Execute ждёт заданную паузу, наблюдая отмену контекста.
func (d *Delay) Execute(ctx context.Context, req *Request) (*Response, error) {
	durationMs := GetParamInt(req.Params, paramDurationMs)
	if durationMs < 0 {
		return nil, fmt.Errorf("%w: %s: duration_ms must be >= 0", ErrInvalidParams, ImplDelay)
	}

	if durationMs > 0 {
		timer := time.NewTimer(time.Duration(durationMs) * time.Millisecond)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	return NewResponse(map[string]any{
		"value": req.Inputs["value"],
	}), nil
}
