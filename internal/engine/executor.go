package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/nodes"
	"github.com/shaiso/Conduit/internal/telemetry"
)

// Размер буфера канала событий потокового выполнения.
const eventBufferSize = 16

// Executor выполняет скомпилированный Blueprint.
//
// Планировщик — динамическая ready-очередь над графом зависимостей:
// все узлы с завершёнными зависимостями выполняются одновременно
// (горутина на узел), координатор ждёт завершения хотя бы одного
// и продвигает готовность downstream-узлов. Первая ошибка узла
// включает fail-fast: новые узлы не запускаются, контекст run
// отменяется, in-flight узлы кооперативно сворачиваются.
//
// Вся разделяемая mutable-память run (выходы узлов, счётчики
// зависимостей, список результатов) принадлежит только горутине
// координатора; горутины узлов получают снимок входов и возвращают
// свежую карту выходов через канал.
type Executor struct {
	registry *nodes.Registry
	logger   *slog.Logger
}

// Config — конфигурация Executor.
type Config struct {
	// Registry — реестр реализаций узлов. Обязателен.
	Registry *nodes.Registry

	// Logger — логгер. Если nil, используется slog.Default().
	Logger *slog.Logger
}

// New создаёт новый Executor.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		registry: cfg.Registry,
		logger:   logger,
	}
}

// Execute выполняет blueprint и возвращает итоговый результат.
//
// Ошибки отдельных узлов не возвращаются как Go-ошибки: они
// фиксируются в NodeResults, а верхнеуровневая ошибка — в Error.
func (e *Executor) Execute(ctx context.Context, bp *domain.Blueprint) *domain.WorkflowExecutionResult {
	return e.run(ctx, bp, nil)
}

// ExecuteStream выполняет blueprint, отдавая события жизненного цикла
// по мере их возникновения.
//
// Канал закрывается после терминального события (workflow_complete или
// workflow_error). Если потребитель уходит раньше, он обязан отменить
// ctx: координатор не блокируется на отправке в брошенный канал.
func (e *Executor) ExecuteStream(ctx context.Context, bp *domain.Blueprint) <-chan domain.ExecutionEvent {
	events := make(chan domain.ExecutionEvent, eventBufferSize)

	go func() {
		defer close(events)

		emit := func(ev domain.ExecutionEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
		e.run(ctx, bp, emit)
	}()

	return events
}

// nodeDone — сообщение горутины узла координатору.
type nodeDone struct {
	nodeID   string
	nodeType string
	outputs  map[string]any
	err      error
	elapsed  time.Duration
}

// run — общий цикл планировщика для Execute и ExecuteStream.
func (e *Executor) run(ctx context.Context, bp *domain.Blueprint, emit func(domain.ExecutionEvent)) *domain.WorkflowExecutionResult {
	start := time.Now()

	if emit == nil {
		emit = func(domain.ExecutionEvent) {}
	}

	emit(domain.ExecutionEvent{
		Type:       domain.EventWorkflowStart,
		Timestamp:  time.Now(),
		TotalNodes: len(bp.Nodes),
	})

	g := buildDepGraph(bp)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Состояние run. Принадлежит исключительно этой горутине.
	produced := make(map[string]map[string]any, len(bp.Nodes))
	results := make([]domain.NodeExecutionResult, 0, len(bp.Nodes))

	done := make(chan nodeDone)
	running := 0
	failed := false
	var failedNode, failMsg string

	fail := func(nodeID, msg string) {
		if failed {
			return
		}
		failed = true
		failedNode = nodeID
		failMsg = msg
		cancel()
	}

	launch := func(id string) {
		// Первая ошибка уже зафиксирована: новые узлы не стартуют,
		// даже если их зависимости успели завершиться.
		if failed {
			return
		}

		node, _ := bp.Node(id)

		emit(domain.ExecutionEvent{
			Type:      domain.EventNodeStart,
			Timestamp: time.Now(),
			NodeID:    id,
			NodeType:  node.Type,
		})

		inputs, err := resolveInputs(bp, node, produced, e.logger)
		if err != nil {
			// Ошибка разрешения входов — ошибка узла: горутина не стартует,
			// но node_start уже отправлен, поэтому пара start/error цела.
			results = append(results, domain.NodeExecutionResult{
				NodeID: id,
				Status: domain.ResultError,
				Error:  err.Error(),
			})
			emit(domain.ExecutionEvent{
				Type:      domain.EventNodeError,
				Timestamp: time.Now(),
				NodeID:    id,
				NodeType:  node.Type,
				Error:     err.Error(),
			})
			telemetry.ObserveNodeExecution(node.Type, "error", 0)
			fail(id, err.Error())
			return
		}

		running++
		go func() {
			st := time.Now()
			outputs, err := e.dispatch(runCtx, node, inputs)
			done <- nodeDone{
				nodeID:   id,
				nodeType: node.Type,
				outputs:  outputs,
				err:      err,
				elapsed:  time.Since(st),
			}
		}()
	}

	// Затравка: все узлы без зависимостей.
	for _, id := range g.roots(bp.ExecutionOrder) {
		launch(id)
	}

	// Цикл координатора: ждём завершения хотя бы одной задачи,
	// продвигаем готовность, при ошибке дожидаемся отмены in-flight.
	for running > 0 {
		d := <-done
		running--

		if d.err != nil {
			msg := d.err.Error()
			if failed && wasCancelled(d.err) {
				msg = "cancelled: upstream workflow failure"
			}

			results = append(results, domain.NodeExecutionResult{
				NodeID:          d.nodeID,
				Status:          domain.ResultError,
				Error:           msg,
				ExecutionTimeMs: d.elapsed.Milliseconds(),
			})
			emit(domain.ExecutionEvent{
				Type:      domain.EventNodeError,
				Timestamp: time.Now(),
				NodeID:    d.nodeID,
				NodeType:  d.nodeType,
				Error:     msg,
			})
			telemetry.ObserveNodeExecution(d.nodeType, "error", d.elapsed)

			e.logger.Error("node failed",
				"node_id", d.nodeID,
				"node_type", d.nodeType,
				"error", msg,
			)
			fail(d.nodeID, d.err.Error())
			continue
		}

		produced[d.nodeID] = d.outputs
		results = append(results, domain.NodeExecutionResult{
			NodeID:          d.nodeID,
			Status:          domain.ResultCompleted,
			Outputs:         d.outputs,
			ExecutionTimeMs: d.elapsed.Milliseconds(),
		})
		emit(domain.ExecutionEvent{
			Type:      domain.EventNodeComplete,
			Timestamp: time.Now(),
			NodeID:    d.nodeID,
			NodeType:  d.nodeType,
			Outputs:   d.outputs,
		})
		telemetry.ObserveNodeExecution(d.nodeType, "completed", d.elapsed)

		e.logger.Debug("node completed",
			"node_id", d.nodeID,
			"node_type", d.nodeType,
			"duration", d.elapsed,
		)

		if failed {
			continue
		}
		for _, next := range g.adjacency[d.nodeID] {
			g.inDegree[next]--
			if g.inDegree[next] == 0 {
				launch(next)
			}
		}
	}

	total := time.Since(start)
	result := &domain.WorkflowExecutionResult{
		NodeResults:          results,
		TotalExecutionTimeMs: total.Milliseconds(),
	}

	if failed {
		result.Error = fmt.Sprintf("node %s failed: %s", failedNode, failMsg)
		telemetry.ObserveRun("failed", total)

		emit(domain.ExecutionEvent{
			Type:      domain.EventWorkflowError,
			Timestamp: time.Now(),
			Error:     result.Error,
			Result:    result,
		})
		return result
	}

	result.Success = true
	result.WorkflowOutputs = e.collectWorkflowOutputs(bp, produced)
	telemetry.ObserveRun("succeeded", total)

	emit(domain.ExecutionEvent{
		Type:      domain.EventWorkflowComplete,
		Timestamp: time.Now(),
		Result:    result,
	})
	return result
}

// dispatch вызывает реализацию узла через реестр.
// Паника реализации перехватывается и становится ошибкой узла.
func (e *Executor) dispatch(ctx context.Context, node *domain.BlueprintNode, inputs map[string]any) (outputs map[string]any, err error) {
	impl := node.Implementation
	if impl == "" {
		impl = node.Type
	}

	exec, err := e.registry.Get(impl)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			outputs = nil
			err = fmt.Errorf("%w: %v", ErrExecutorPanic, r)
		}
	}()

	resp, err := exec.Execute(ctx, &nodes.Request{
		NodeID:   node.NodeID,
		NodeType: node.Type,
		Params:   node.Params,
		Inputs:   inputs,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return map[string]any{}, nil
	}
	return resp.Outputs, nil
}

// collectWorkflowOutputs извлекает объявленные результаты workflow из
// выходов узлов. Результат, чей источник не произвёл ожидаемый ключ,
// опускается с warning, а не роняет run.
func (e *Executor) collectWorkflowOutputs(bp *domain.Blueprint, produced map[string]map[string]any) map[string]any {
	outputs := make(map[string]any, len(bp.WorkflowOutputs))

	for _, wo := range bp.WorkflowOutputs {
		nodeOutputs, ok := produced[wo.FromNode]
		if !ok {
			e.logger.Warn("workflow output omitted: source node produced nothing",
				"key", wo.Key,
				"from_node", wo.FromNode,
			)
			continue
		}
		value, ok := nodeOutputs[wo.FromOutput]
		if !ok {
			e.logger.Warn("workflow output omitted: source output missing",
				"key", wo.Key,
				"from_node", wo.FromNode,
				"from_output", wo.FromOutput,
			)
			continue
		}
		outputs[wo.Key] = value
	}

	return outputs
}

// wasCancelled различает кооперативную отмену и собственную ошибку узла.
func wasCancelled(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, nodes.ErrCancelled)
}
