package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Conduit/internal/domain"
)

// Workflow DTOs

// CreateWorkflowRequest — запрос на создание workflow.
type CreateWorkflowRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// UpdateWorkflowRequest — запрос на обновление workflow.
type UpdateWorkflowRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// WorkflowResponse — ответ с workflow.
type WorkflowResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkflowFromDomain конвертирует domain.Workflow в WorkflowResponse.
func WorkflowFromDomain(wf domain.Workflow) WorkflowResponse {
	return WorkflowResponse{
		ID:          wf.ID,
		Name:        wf.Name,
		Description: wf.Description,
		IsActive:    wf.IsActive,
		CreatedBy:   wf.CreatedBy,
		CreatedAt:   wf.CreatedAt,
	}
}

// WorkflowVersion DTOs

// CreateWorkflowVersionRequest — запрос на создание версии workflow.
type CreateWorkflowVersionRequest struct {
	Graph domain.GraphDef `json:"graph"`
}

// WorkflowVersionResponse — ответ с версией workflow.
type WorkflowVersionResponse struct {
	WorkflowID uuid.UUID       `json:"workflow_id"`
	Version    int             `json:"version"`
	Graph      domain.GraphDef `json:"graph"`
	CreatedAt  time.Time       `json:"created_at"`
}

// WorkflowVersionFromDomain конвертирует domain.WorkflowVersion в WorkflowVersionResponse.
func WorkflowVersionFromDomain(v domain.WorkflowVersion) WorkflowVersionResponse {
	return WorkflowVersionResponse{
		WorkflowID: v.WorkflowID,
		Version:    v.Version,
		Graph:      v.Graph,
		CreatedAt:  v.CreatedAt,
	}
}

// Compile DTOs

// CompileGraphRequest — запрос на компиляцию графа.
type CompileGraphRequest struct {
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Nodes       []domain.GraphNode `json:"nodes"`
	Edges       []domain.GraphEdge `json:"edges"`
}

// CompileGraphResponse — результат компиляции.
type CompileGraphResponse struct {
	Success     bool                           `json:"success"`
	Blueprint   *domain.Blueprint              `json:"blueprint,omitempty"`
	Diagnostics []domain.CompilationDiagnostic `json:"diagnostics"`
}

// NodeTypeResponse — описание типа узла из каталога.
type NodeTypeResponse struct {
	Type           string              `json:"type"`
	Inputs         []domain.PortSchema `json:"inputs"`
	Outputs        []domain.PortSchema `json:"outputs"`
	Implementation string              `json:"implementation"`
	DefaultParams  map[string]any      `json:"default_params,omitempty"`
	Terminal       bool                `json:"terminal,omitempty"`
}

// Run DTOs

// CreateRunRequest — запрос на создание run.
type CreateRunRequest struct {
	Version *int `json:"version,omitempty"`
}

// RunResponse — ответ с run.
type RunResponse struct {
	ID         uuid.UUID                       `json:"id"`
	WorkflowID uuid.UUID                       `json:"workflow_id"`
	Version    int                             `json:"version"`
	Status     string                          `json:"status"`
	Result     *domain.WorkflowExecutionResult `json:"result,omitempty"`
	StartedAt  *time.Time                      `json:"started_at,omitempty"`
	FinishedAt *time.Time                      `json:"finished_at,omitempty"`
	Error      string                          `json:"error,omitempty"`
	CreatedAt  time.Time                       `json:"created_at"`
}

// RunFromDomain конвертирует domain.Run в RunResponse.
func RunFromDomain(r domain.Run) RunResponse {
	return RunResponse{
		ID:         r.ID,
		WorkflowID: r.WorkflowID,
		Version:    r.Version,
		Status:     string(r.Status),
		Result:     r.Result,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Error:      r.Error,
		CreatedAt:  r.CreatedAt,
	}
}

// Schedule DTOs

// CreateScheduleRequest — запрос на создание schedule.
type CreateScheduleRequest struct {
	Name        string `json:"name"`
	CronExpr    string `json:"cron_expr,omitempty"`
	IntervalSec int    `json:"interval_sec,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// UpdateScheduleRequest — запрос на обновление schedule.
type UpdateScheduleRequest struct {
	Name        *string `json:"name,omitempty"`
	CronExpr    *string `json:"cron_expr,omitempty"`
	IntervalSec *int    `json:"interval_sec,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
}

// SetEnabledRequest — запрос на включение/выключение.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — ответ с schedule.
type ScheduleResponse struct {
	ID          uuid.UUID  `json:"id"`
	WorkflowID  uuid.UUID  `json:"workflow_id"`
	Name        string     `json:"name"`
	CronExpr    string     `json:"cron_expr,omitempty"`
	IntervalSec int        `json:"interval_sec,omitempty"`
	Timezone    string     `json:"timezone"`
	Enabled     bool       `json:"enabled"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastRunID   *uuid.UUID `json:"last_run_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ScheduleFromDomain конвертирует domain.Schedule в ScheduleResponse.
func ScheduleFromDomain(s *domain.Schedule) ScheduleResponse {
	if s == nil {
		return ScheduleResponse{}
	}
	return ScheduleResponse{
		ID:          s.ID,
		WorkflowID:  s.WorkflowID,
		Name:        s.Name,
		CronExpr:    s.CronExpr,
		IntervalSec: s.IntervalSec,
		Timezone:    s.Timezone,
		Enabled:     s.Enabled,
		NextDueAt:   s.NextDueAt,
		LastRunAt:   s.LastRunAt,
		LastRunID:   s.LastRunID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
