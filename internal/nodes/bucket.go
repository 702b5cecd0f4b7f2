package nodes

import (
	"context"
	"fmt"
)

// ImplBucket — идентификатор реализации bucket.
const ImplBucket = "bucket"

// Bucket — реализация узлов-источников (text_bucket, image_bucket,
// audio_bucket).
//
// Источники не имеют входов: значения берутся прямо из параметров узла.
// Каждый параметр, кроме служебных, становится одноимённым выходом.
//
// Параметры:
//
//	{
//	    "texts": ["Hello", "World"]
//	}
//
// Outputs:
//
//	{
//	    "texts": ["Hello", "World"]
//	}
type Bucket struct{}

// NewBucket создаёт новый Bucket.
func NewBucket() *Bucket {
	return &Bucket{}
}

// Name возвращает идентификатор реализации.
func (b *Bucket) Name() string {
	return ImplBucket
}

// Execute отдаёт параметры узла как его выходы.
func (b *Bucket) Execute(ctx context.Context, req *Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	default:
	}

	outputs := make(map[string]any, len(req.Params))
	for k, v := range req.Params {
		outputs[k] = v
	}

	return NewResponse(outputs), nil
}
