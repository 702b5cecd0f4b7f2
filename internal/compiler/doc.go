// Package compiler превращает сырой граф узлов и рёбер в валидированный
// план выполнения (Blueprint).
//
// Конвейер компиляции:
//   - parse     — карта узлов по ID, пустые и дублирующиеся ID
//   - validate  — типы узлов, порты, совместимость соединений,
//     единственный писатель на вход, обязательные входы, источники
//   - normalize — params без UI-полей, каталожные defaults, соединения
//   - toposort  — топологический порядок (алгоритм Кана), поиск циклов
//   - assemble  — результаты workflow из входов терминальных узлов
//
// Каждая стадия прерывает конвейер своими ошибками. Компилятор никогда
// не бросает ошибок для невалидного графа: все проблемы возвращаются
// как CompilationDiagnostic в CompilationResult.
package compiler
