// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (репозитории, compiler, executor, publisher, logger)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - compile_handler.go  — компиляция графов и каталог типов узлов
//   - workflow_handler.go — обработчики для /workflows
//   - run_handler.go      — запуск workflow, SSE-стрим событий выполнения
//   - schedule_handler.go — обработчики для /schedules
//
// Выполнение workflow идёт in-process: POST /runs запускает фоновое
// выполнение, POST /runs/stream стримит события как Server-Sent Events.
package api
