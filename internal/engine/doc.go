// Package engine выполняет скомпилированные blueprint-ы.
//
// Executor строит из соединений blueprint граф зависимостей с
// дедупликацией (узел ждёт каждый upstream один раз, сколько бы
// портов их ни связывало) и гонит динамическую ready-очередь:
// горутина на готовый узел, fail-fast при первой ошибке.
//
// Перед запуском узла resolveInputs собирает его входы из выходов
// upstream-узлов и приводит форму значений (single/list) к схеме
// входного порта.
package engine
