// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchange, queues, bindings
//   - publisher.go  — публикация событий выполнения
//
// Conduit выполняет workflow in-process и сам сообщения не потребляет:
// события run.* и node.* публикуются в topic-обменник conduit.events
// для внешних подписчиков.
package mq
