package nodes

import "errors"

// Ошибки реализаций узлов.
var (
	// ErrExecutorNotFound — реализация не найдена в реестре.
	ErrExecutorNotFound = errors.New("node executor not found")

	// ErrInvalidParams — невалидные параметры узла.
	ErrInvalidParams = errors.New("invalid node params")

	// ErrCancelled — выполнение узла отменено.
	ErrCancelled = errors.New("node execution cancelled")

	// ErrHTTPRequest — HTTP-запрос завершился ошибкой.
	ErrHTTPRequest = errors.New("http request failed")
)
