package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/repo"
)

// ListRuns возвращает список runs с фильтрацией.
// GET /api/v1/runs?workflow_id=...&status=...&limit=...&offset=...
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	filter := repo.RunFilter{Limit: 50}

	if workflowIDStr := r.URL.Query().Get("workflow_id"); workflowIDStr != "" {
		workflowID, err := uuid.Parse(workflowIDStr)
		if err != nil {
			BadRequest(w, "invalid workflow_id")
			return
		}
		filter.WorkflowID = &workflowID
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = domain.RunStatus(status)
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		filter.Limit = int(mustParseInt(limitStr, 50))
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		filter.Offset = int(mustParseInt(offsetStr, 0))
	}

	runs, err := h.runRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]RunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}

	List(w, result, len(result))
}

// CreateRun запускает workflow и возвращает принятый run.
//
// Выполнение идёт в фоне: ответ — 202 с run в статусе RUNNING,
// итог доступен через GET /runs/{id}.
// POST /api/v1/workflows/{id}/runs
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	workflowID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid workflow id")
		return
	}

	var req CreateRunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid request body")
			return
		}
	}

	run, bp, ok := h.prepareRun(w, r, workflowID, req.Version)
	if !ok {
		return
	}

	run.MarkRunning()
	if err := h.runRepo.Update(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	// Выполнение отвязано от HTTP-запроса.
	go h.executeRun(context.Background(), run, bp, nil)

	Accepted(w, RunFromDomain(*run))
}

// StreamRun запускает workflow и стримит события выполнения как SSE.
//
// Каждое событие — кадр "event: <type>" + "data: <json>". Поток
// закрывается после терминального события. Разрыв соединения
// отменяет выполнение.
// POST /api/v1/workflows/{id}/runs/stream
func (h *Handler) StreamRun(w http.ResponseWriter, r *http.Request) {
	workflowID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid workflow id")
		return
	}

	var req CreateRunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid request body")
			return
		}
	}

	run, bp, ok := h.prepareRun(w, r, workflowID, req.Version)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		InternalError(w, h.logger, fmt.Errorf("response writer does not support streaming"))
		return
	}

	run.MarkRunning()
	if err := h.runRepo.Update(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.executeRun(r.Context(), run, bp, func(ev domain.ExecutionEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			h.logger.Error("marshal event", "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
		flusher.Flush()
	})
}

// GetRun возвращает run по ID.
// GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "run not found") {
		return
	}

	Success(w, RunFromDomain(*run))
}

// prepareRun резолвит версию, компилирует граф и создаёт run.
// При любой проблеме пишет HTTP-ответ и возвращает ok=false.
func (h *Handler) prepareRun(w http.ResponseWriter, r *http.Request, workflowID uuid.UUID, version *int) (*domain.Run, *domain.Blueprint, bool) {
	wf, err := h.workflowRepo.GetByID(r.Context(), workflowID)
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return nil, nil, false
	}
	if !wf.IsActive {
		InvalidState(w, "workflow is not active")
		return nil, nil, false
	}

	var wv *domain.WorkflowVersion
	if version != nil {
		wv, err = h.workflowRepo.GetVersion(r.Context(), workflowID, *version)
		if HandleRepoError(w, h.logger, err, "workflow version not found") {
			return nil, nil, false
		}
	} else {
		wv, err = h.workflowRepo.GetLatestVersion(r.Context(), workflowID)
		if HandleRepoError(w, h.logger, err, "workflow has no versions") {
			return nil, nil, false
		}
	}

	result := h.compiler.Compile(compiler.CompileRequest{
		Nodes:      wv.Graph.Nodes,
		Edges:      wv.Graph.Edges,
		Name:       wf.Name,
		WorkflowID: wf.ID,
		Version:    wv.Version,
	})
	if !result.Success {
		JSON(w, http.StatusUnprocessableEntity, CompileGraphResponse{
			Success:     false,
			Diagnostics: result.Diagnostics,
		})
		return nil, nil, false
	}

	run := &domain.Run{
		ID:         uuid.New(),
		WorkflowID: wf.ID,
		Version:    wv.Version,
		Status:     domain.RunStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := h.runRepo.Create(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return nil, nil, false
	}

	return run, result.Blueprint, true
}

// executeRun прогоняет blueprint через executor, публикует события
// в RabbitMQ, отдаёт их наблюдателю и фиксирует итог в БД.
func (h *Handler) executeRun(ctx context.Context, run *domain.Run, bp *domain.Blueprint, observe func(domain.ExecutionEvent)) {
	logger := h.logger.With("run_id", run.ID, "workflow_id", run.WorkflowID)
	logger.Info("run started", "nodes", len(bp.Nodes))

	var result *domain.WorkflowExecutionResult
	for ev := range h.executor.ExecuteStream(ctx, bp) {
		if h.publisher != nil {
			if err := h.publisher.PublishEvent(ctx, run.ID, run.WorkflowID, ev); err != nil {
				logger.Warn("failed to publish event", "event_type", ev.Type, "error", err)
			}
		}
		if observe != nil {
			observe(ev)
		}
		if ev.Type.IsTerminal() {
			result = ev.Result
		}
	}

	if result == nil {
		// Поток оборван отменой контекста до терминального события.
		result = &domain.WorkflowExecutionResult{
			Error: "run aborted: " + context.Cause(ctx).Error(),
		}
	}

	run.MarkFinished(result)

	// Итог пишем с отдельным контекстом: ctx запроса мог быть отменён.
	updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.runRepo.Update(updateCtx, run); err != nil {
		logger.Error("failed to persist run result", "error", err)
	}

	logger.Info("run finished",
		"status", run.Status,
		"duration", run.Duration(),
	)
}

// mustParseInt парсит строку в int с дефолтным значением.
func mustParseInt(s string, defaultVal int64) int64 {
	if n, err := json.Number(s).Int64(); err == nil {
		return n
	}
	return defaultVal
}
