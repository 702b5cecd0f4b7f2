package engine

import "errors"

// Ошибки выполнения.
var (
	// ErrMissingUpstream — upstream-узел или его выход отсутствуют
	// в момент разрешения входов (нарушение контракта планировщика).
	ErrMissingUpstream = errors.New("upstream output missing")

	// ErrEmptyListConversion — пустой список нельзя привести
	// к одиночному значению нетекстового типа.
	ErrEmptyListConversion = errors.New("cannot convert empty list to single value")

	// ErrExecutorPanic — реализация узла запаниковала.
	ErrExecutorPanic = errors.New("node executor panicked")
)
