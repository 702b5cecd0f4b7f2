package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workflow — сохранённое определение графа обработки.
//
// Workflow — это "рецепт": направленный граф типизированных узлов,
// который пользователь собирает в редакторе. Один workflow может иметь
// множество версий (WorkflowVersion), каждый запуск (Run) выполняет
// конкретную версию.
type Workflow struct {
	// ID — уникальный идентификатор workflow.
	ID uuid.UUID `json:"id"`

	// Name — уникальное имя workflow (например, "podcast-digest").
	Name string `json:"name"`

	// Description — описание назначения.
	Description string `json:"description,omitempty"`

	// IsActive — флаг активности. Неактивные workflows не запускаются
	// по расписанию.
	IsActive bool `json:"is_active"`

	// CreatedBy — автор workflow.
	CreatedBy string `json:"created_by,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}

// WorkflowVersion — версия workflow с конкретным графом.
type WorkflowVersion struct {
	// WorkflowID — ссылка на родительский workflow.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// Version — номер версии (1, 2, 3, ...).
	Version int `json:"version"`

	// Graph — граф узлов и рёбер в том виде, в каком его экспортирует
	// редактор. Компилируется в Blueprint при каждом запуске.
	Graph GraphDef `json:"graph"`

	// CreatedAt — время создания версии.
	CreatedAt time.Time `json:"created_at"`
}

// GraphDef — сырое определение графа: вход компилятора.
type GraphDef struct {
	// Nodes — узлы графа.
	Nodes []GraphNode `json:"nodes"`

	// Edges — рёбра между портами узлов.
	Edges []GraphEdge `json:"edges"`
}

// GraphNode — узел графа в том виде, в каком его отдаёт редактор.
type GraphNode struct {
	// ID — уникальный идентификатор узла в рамках графа.
	ID string `json:"id"`

	// Type — тип узла, должен резолвиться через каталог.
	Type string `json:"type"`

	// Data — свободная конфигурация узла. Содержит как параметры
	// выполнения, так и служебные поля редактора (position и т.п.),
	// которые компилятор отбрасывает при нормализации.
	Data map[string]any `json:"data,omitempty"`
}

// GraphEdge — ребро графа: соединение выходного порта с входным.
type GraphEdge struct {
	// Source — ID узла-источника.
	Source string `json:"source"`

	// SourceHandle — ключ выходного порта источника.
	SourceHandle string `json:"sourceHandle"`

	// Target — ID узла-приёмника.
	Target string `json:"target"`

	// TargetHandle — ключ входного порта приёмника.
	TargetHandle string `json:"targetHandle"`
}
