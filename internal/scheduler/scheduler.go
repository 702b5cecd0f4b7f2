package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/engine"
	"github.com/shaiso/Conduit/internal/mq"
	"github.com/shaiso/Conduit/internal/repo"
)

// Scheduler — планировщик, обрабатывающий due schedules.
//
// Выполнение запущенных workflow идёт in-process: по due schedule
// планировщик компилирует последнюю версию workflow и прогоняет
// blueprint через engine.Executor в фоновой горутине.
type Scheduler struct {
	scheduleRepo *repo.ScheduleRepo
	runRepo      *repo.RunRepo
	workflowRepo *repo.WorkflowRepo
	compiler     *compiler.Compiler
	executor     *engine.Executor
	publisher    *mq.Publisher
	logger       *slog.Logger
	batchSize    int
}

// Config — конфигурация Scheduler.
type Config struct {
	ScheduleRepo *repo.ScheduleRepo
	RunRepo      *repo.RunRepo
	WorkflowRepo *repo.WorkflowRepo
	Compiler     *compiler.Compiler
	Executor     *engine.Executor
	Publisher    *mq.Publisher
	Logger       *slog.Logger
	BatchSize    int // количество schedules за один тик (default: 100)
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Scheduler{
		scheduleRepo: cfg.ScheduleRepo,
		runRepo:      cfg.RunRepo,
		workflowRepo: cfg.WorkflowRepo,
		compiler:     cfg.Compiler,
		executor:     cfg.Executor,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
		batchSize:    batchSize,
	}
}

// Tick выполняет один тик планировщика.
//
// 1. Находит due schedules (enabled=true, next_due_at <= now)
// 2. Для каждого schedule компилирует последнюю версию workflow
// 3. Создаёт run и запускает выполнение в фоне
// 4. Обновляет next_due_at
//
// Ошибки одного schedule не блокируют обработку остальных.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := time.Now()

	schedules, err := s.scheduleRepo.ListDue(ctx, now, s.batchSize)
	if err != nil {
		return fmt.Errorf("list due schedules: %w", err)
	}

	if len(schedules) == 0 {
		return nil
	}

	s.logger.Debug("found due schedules", "count", len(schedules))

	var processed, launched int
	for i := range schedules {
		sched := &schedules[i]

		runLaunched, err := s.processSchedule(ctx, sched, now)
		if err != nil {
			s.logger.Error("failed to process schedule",
				"schedule_id", sched.ID,
				"schedule_name", sched.Name,
				"error", err,
			)
			// Продолжаем обработку остальных
			continue
		}

		processed++
		if runLaunched {
			launched++
		}
	}

	s.logger.Info("scheduler tick completed",
		"due", len(schedules),
		"processed", processed,
		"runs_launched", launched,
	)

	return nil
}

// processSchedule обрабатывает один schedule.
// Возвращает true, если run был запущен.
func (s *Scheduler) processSchedule(ctx context.Context, sched *domain.Schedule, now time.Time) (bool, error) {
	// next_due_at двигаем в любом исходе: сломанный workflow не должен
	// заставлять планировщик молотить один и тот же schedule каждый тик.
	defer func() {
		nextDue, err := CalculateNextDue(sched, now)
		if err != nil {
			s.logger.Error("failed to calculate next due",
				"schedule_id", sched.ID,
				"error", err,
			)
			return
		}
		sched.NextDueAt = &nextDue
		sched.UpdatedAt = time.Now()
		if err := s.scheduleRepo.Update(ctx, sched); err != nil {
			s.logger.Error("failed to update schedule",
				"schedule_id", sched.ID,
				"error", err,
			)
		}
	}()

	wf, err := s.workflowRepo.GetByID(ctx, sched.WorkflowID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("workflow not found for schedule, skipping",
				"schedule_id", sched.ID,
				"workflow_id", sched.WorkflowID,
			)
			return false, nil
		}
		return false, fmt.Errorf("get workflow: %w", err)
	}
	if !wf.IsActive {
		s.logger.Debug("workflow is not active, skipping",
			"schedule_id", sched.ID,
			"workflow_id", sched.WorkflowID,
		)
		return false, nil
	}

	version, err := s.workflowRepo.GetLatestVersion(ctx, sched.WorkflowID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("workflow has no versions, skipping",
				"schedule_id", sched.ID,
				"workflow_id", sched.WorkflowID,
			)
			return false, nil
		}
		return false, fmt.Errorf("get latest workflow version: %w", err)
	}

	result := s.compiler.Compile(compiler.CompileRequest{
		Nodes:      version.Graph.Nodes,
		Edges:      version.Graph.Edges,
		Name:       wf.Name,
		WorkflowID: wf.ID,
		Version:    version.Version,
	})
	if !result.Success {
		s.logger.Error("workflow version does not compile, skipping",
			"schedule_id", sched.ID,
			"workflow_id", sched.WorkflowID,
			"version", version.Version,
			"errors", len(result.Errors()),
		)
		return false, nil
	}

	run := &domain.Run{
		ID:         uuid.New(),
		WorkflowID: wf.ID,
		Version:    version.Version,
		Status:     domain.RunStatusPending,
		CreatedAt:  now,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return false, fmt.Errorf("create run: %w", err)
	}

	run.MarkRunning()
	if err := s.runRepo.Update(ctx, run); err != nil {
		return false, fmt.Errorf("update run: %w", err)
	}

	sched.RecordRun(run.ID, now)

	s.logger.Info("launching run from schedule",
		"run_id", run.ID,
		"schedule_id", sched.ID,
		"schedule_name", sched.Name,
		"workflow_id", wf.ID,
		"version", version.Version,
	)

	go s.executeRun(run, result.Blueprint)

	return true, nil
}

// executeRun прогоняет blueprint через executor и фиксирует итог.
func (s *Scheduler) executeRun(run *domain.Run, bp *domain.Blueprint) {
	ctx := context.Background()
	logger := s.logger.With("run_id", run.ID, "workflow_id", run.WorkflowID)

	var result *domain.WorkflowExecutionResult
	for ev := range s.executor.ExecuteStream(ctx, bp) {
		if s.publisher != nil {
			if err := s.publisher.PublishEvent(ctx, run.ID, run.WorkflowID, ev); err != nil {
				logger.Warn("failed to publish event", "event_type", ev.Type, "error", err)
			}
		}
		if ev.Type.IsTerminal() {
			result = ev.Result
		}
	}
	if result == nil {
		result = &domain.WorkflowExecutionResult{Error: "run aborted"}
	}

	run.MarkFinished(result)

	updateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.runRepo.Update(updateCtx, run); err != nil {
		logger.Error("failed to persist run result", "error", err)
	}

	logger.Info("scheduled run finished",
		"status", run.Status,
		"duration", run.Duration(),
	)
}
