package domain

// RuntimeType — тип данных, проходящих через порт.
type RuntimeType string

// Типы данных портов.
const (
	// TypeText — текстовое значение.
	TypeText RuntimeType = "text"

	// TypeImageRef — ссылка на изображение (URL или storage key).
	TypeImageRef RuntimeType = "image"

	// TypeAudioRef — ссылка на аудио.
	TypeAudioRef RuntimeType = "audio"

	// TypeVideoRef — ссылка на видео. Видео несёт в себе аудиодорожку,
	// поэтому VideoRef допустим там, где ожидается AudioRef.
	TypeVideoRef RuntimeType = "video"

	// TypeJSON — произвольная JSON-структура. Входной порт этого типа
	// принимает значение любого runtime-типа.
	TypeJSON RuntimeType = "json"
)

// Shape — кардинальность значения порта.
type Shape string

const (
	// ShapeSingle — одно значение.
	ShapeSingle Shape = "single"

	// ShapeList — ноль или более значений.
	ShapeList Shape = "list"
)

// PortSchema — схема одного именованного порта узла.
type PortSchema struct {
	// Key — имя порта, уникальное в рамках входов или выходов узла.
	Key string `json:"key"`

	// Type — runtime-тип значений порта.
	Type RuntimeType `json:"type"`

	// Shape — кардинальность: single или list.
	Shape Shape `json:"shape"`

	// Required — обязателен ли вход (только для входных портов).
	Required bool `json:"required,omitempty"`
}

// NodeTypeSpec — описание типа узла в каталоге.
//
// Иммутабельная запись: каталог создаётся один раз при старте
// и дальше только читается.
type NodeTypeSpec struct {
	// Inputs — упорядоченный список входных портов.
	Inputs []PortSchema `json:"inputs"`

	// Outputs — упорядоченный список выходных портов.
	Outputs []PortSchema `json:"outputs"`

	// Implementation — идентификатор реализации по умолчанию.
	// Используется компилятором, если узел не указал свою.
	Implementation string `json:"implementation,omitempty"`

	// DefaultParams — параметры по умолчанию.
	// Параметры узла из графа имеют приоритет.
	DefaultParams map[string]any `json:"default_params,omitempty"`

	// Terminal — true для финальных узлов: их подключённые входы
	// становятся именованными результатами workflow.
	Terminal bool `json:"terminal,omitempty"`
}

// InputSchema возвращает схему входного порта по ключу.
func (s *NodeTypeSpec) InputSchema(key string) (PortSchema, bool) {
	for _, p := range s.Inputs {
		if p.Key == key {
			return p, true
		}
	}
	return PortSchema{}, false
}

// OutputSchema возвращает схему выходного порта по ключу.
func (s *NodeTypeSpec) OutputSchema(key string) (PortSchema, bool) {
	for _, p := range s.Outputs {
		if p.Key == key {
			return p, true
		}
	}
	return PortSchema{}, false
}

// IsSource возвращает true, если тип узла не объявляет входов.
// Такие узлы — источники данных графа, входящие рёбра к ним запрещены.
func (s *NodeTypeSpec) IsSource() bool {
	return len(s.Inputs) == 0
}
