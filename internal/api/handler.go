package api

import (
	"log/slog"

	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/engine"
	"github.com/shaiso/Conduit/internal/mq"
	"github.com/shaiso/Conduit/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	workflowRepo *repo.WorkflowRepo
	runRepo      *repo.RunRepo
	scheduleRepo *repo.ScheduleRepo
	catalog      *catalog.Catalog
	compiler     *compiler.Compiler
	executor     *engine.Executor
	publisher    *mq.Publisher
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	WorkflowRepo *repo.WorkflowRepo
	RunRepo      *repo.RunRepo
	ScheduleRepo *repo.ScheduleRepo
	Catalog      *catalog.Catalog
	Compiler     *compiler.Compiler
	Executor     *engine.Executor
	Publisher    *mq.Publisher
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		workflowRepo: cfg.WorkflowRepo,
		runRepo:      cfg.RunRepo,
		scheduleRepo: cfg.ScheduleRepo,
		catalog:      cfg.Catalog,
		compiler:     cfg.Compiler,
		executor:     cfg.Executor,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
	}
}
