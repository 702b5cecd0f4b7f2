package nodes

import (
	"fmt"
	"sort"
	"sync"
)

// Registry — реестр реализаций узлов.
//
// Ключ — идентификатор реализации (BlueprintNode.Implementation).
// Заполняется явно до запуска workflow; движок получает реестр
// как зависимость и только читает его. Потокобезопасен.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// DefaultRegistry создаёт реестр с локально исполнимыми реализациями.
//
// Регистрирует: bucket, template, http, delay, passthrough.
// Медиа-реализации (transcription, image_match, audio_extract)
// регистрирует встраивающий код — у них внешние зависимости.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewBucket())
	r.Register(NewTemplate())
	r.Register(NewHTTP())
	r.Register(NewDelay())
	r.Register(NewPassthrough())
	return r
}

// Register добавляет реализацию в реестр.
// Повторная регистрация перезаписывает предыдущую.
func (r *Registry) Register(exec Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[exec.Name()] = exec
}

// Get возвращает реализацию по идентификатору.
func (r *Registry) Get(name string) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exec, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExecutorNotFound, name)
	}
	return exec, nil
}

// Has проверяет, зарегистрирована ли реализация.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.executors[name]
	return ok
}

// Names возвращает отсортированный список зарегистрированных реализаций.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for n := range r.executors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
