// Package cli реализует инструмент командной строки Conduit.
//
// # Обзор
//
// CLI работает локально, без сервера: команды compile и run строят
// компилятор и executor прямо в процессе, используя встроенный каталог
// типов узлов и реестр реализаций. Это делает CLI удобным для
// отладки графов перед публикацией в API.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: conduit compile g.json --json | jq .
//
// ## Commands
//
//   - compile FILE — компиляция графа, диагностики, порядок выполнения
//   - run FILE     — компиляция и выполнение (--stream для событий)
//   - nodes        — каталог доступных типов узлов
//
// Каждая команда создаётся через фабричную функцию (NewCompileCmd и
// т.д.), принимающую outputFn — замыкание для ленивого создания
// Output после парсинга PersistentFlags.
package cli
