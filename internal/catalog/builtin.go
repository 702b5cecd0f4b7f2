package catalog

import "github.com/shaiso/Conduit/internal/domain"

// Встроенные типы узлов.
const (
	TypeTextBucket        = "text_bucket"
	TypeImageBucket       = "image_bucket"
	TypeAudioBucket       = "audio_bucket"
	TypeTextGeneration    = "text_generation"
	TypeTranscription     = "transcription"
	TypeImageMatch        = "image_match"
	TypeVideoAudioExtract = "video_audio_extract"
	TypeHTTPRequest       = "http_request"
	TypeDelay             = "delay"
	TypeOutput            = "output"
)

// Default возвращает каталог со встроенными типами узлов.
//
// Bucket-типы — источники: входов не объявляют, значения берут из
// собственных параметров. Тип output — терминальный: его подключённые
// входы становятся результатами workflow.
func Default() *Catalog {
	c := New()

	c.Register(TypeTextBucket, domain.NodeTypeSpec{
		Outputs: []domain.PortSchema{
			{Key: "texts", Type: domain.TypeText, Shape: domain.ShapeList},
		},
		Implementation: "bucket",
	})

	c.Register(TypeImageBucket, domain.NodeTypeSpec{
		Outputs: []domain.PortSchema{
			{Key: "images", Type: domain.TypeImageRef, Shape: domain.ShapeList},
		},
		Implementation: "bucket",
	})

	c.Register(TypeAudioBucket, domain.NodeTypeSpec{
		Outputs: []domain.PortSchema{
			{Key: "audios", Type: domain.TypeAudioRef, Shape: domain.ShapeList},
		},
		Implementation: "bucket",
	})

	c.Register(TypeTextGeneration, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "prompt", Type: domain.TypeText, Shape: domain.ShapeSingle, Required: true},
			{Key: "context", Type: domain.TypeText, Shape: domain.ShapeSingle},
		},
		Outputs: []domain.PortSchema{
			{Key: "text", Type: domain.TypeText, Shape: domain.ShapeSingle},
		},
		Implementation: "template",
		DefaultParams: map[string]any{
			"template": "{{ .prompt }}",
		},
	})

	c.Register(TypeTranscription, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "audio", Type: domain.TypeAudioRef, Shape: domain.ShapeSingle, Required: true},
		},
		Outputs: []domain.PortSchema{
			{Key: "text", Type: domain.TypeText, Shape: domain.ShapeSingle},
		},
		Implementation: "transcription",
	})

	c.Register(TypeImageMatch, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "images", Type: domain.TypeImageRef, Shape: domain.ShapeList, Required: true},
			{Key: "query", Type: domain.TypeText, Shape: domain.ShapeSingle, Required: true},
		},
		Outputs: []domain.PortSchema{
			{Key: "best_match", Type: domain.TypeImageRef, Shape: domain.ShapeSingle},
		},
		Implementation: "image_match",
	})

	c.Register(TypeVideoAudioExtract, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "video", Type: domain.TypeVideoRef, Shape: domain.ShapeSingle, Required: true},
		},
		Outputs: []domain.PortSchema{
			{Key: "audio", Type: domain.TypeAudioRef, Shape: domain.ShapeSingle},
		},
		Implementation: "audio_extract",
	})

	c.Register(TypeHTTPRequest, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "body", Type: domain.TypeJSON, Shape: domain.ShapeSingle},
		},
		Outputs: []domain.PortSchema{
			{Key: "response", Type: domain.TypeJSON, Shape: domain.ShapeSingle},
		},
		Implementation: "http",
		DefaultParams: map[string]any{
			"method": "GET",
		},
	})

	c.Register(TypeDelay, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "value", Type: domain.TypeJSON, Shape: domain.ShapeSingle},
		},
		Outputs: []domain.PortSchema{
			{Key: "value", Type: domain.TypeJSON, Shape: domain.ShapeSingle},
		},
		Implementation: "delay",
		DefaultParams: map[string]any{
			"duration_ms": 0,
		},
	})

	c.Register(TypeOutput, domain.NodeTypeSpec{
		Inputs: []domain.PortSchema{
			{Key: "result", Type: domain.TypeJSON, Shape: domain.ShapeSingle, Required: true},
		},
		Implementation: "passthrough",
		Terminal:       true,
	})

	return c
}
