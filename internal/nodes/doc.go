// Package nodes содержит реестр реализаций узлов и локальные реализации.
//
// # Обзор
//
// Движок (engine) не выполняет бизнес-логику узлов сам: каждый узел
// диспетчеризуется через Registry по идентификатору реализации из
// Blueprint. Реализация получает нормализованные параметры узла и уже
// разрешённые входы, возвращает карту выходов.
//
// # Интерфейс Executor
//
//	type Executor interface {
//	    Name() string
//	    Execute(ctx context.Context, req *Request) (*Response, error)
//	}
//
// # Реализации
//
//   - bucket      — источники: параметры узла становятся его выходами
//   - template    — детерминированная генерация текста (Go template)
//   - http        — HTTP-запрос к внешнему API
//   - delay       — пауза с passthrough значения
//   - passthrough — терминальные узлы
//
// Реестр заполняется явно до запуска workflow (DefaultRegistry или
// вручную) и передаётся движку как зависимость. Медиа-реализации
// (transcription, image_match, audio_extract) регистрирует
// встраивающий код.
package nodes
