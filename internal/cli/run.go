package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
	"github.com/shaiso/Conduit/internal/engine"
	"github.com/shaiso/Conduit/internal/nodes"
)

// NewRunCmd создаёт команду локального выполнения графа.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Compile and execute a workflow graph file locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()
			logger := newToolLogger()

			gf, err := LoadGraphFile(args[0])
			if err != nil {
				return err
			}

			comp := compiler.New(compiler.Config{
				Catalog: catalog.Default(),
				Logger:  logger,
			})
			result := comp.Compile(compiler.CompileRequest{
				Nodes: gf.Nodes,
				Edges: gf.Edges,
				Name:  gf.Name,
			})
			if !result.Success {
				printDiagnostics(out, result.Diagnostics)
				return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors()))
			}

			exec := engine.New(engine.Config{
				Registry: nodes.DefaultRegistry(),
				Logger:   logger,
			})

			if stream {
				return runStreaming(cmd, out, exec, result.Blueprint)
			}
			return runBlocking(cmd, out, exec, result.Blueprint)
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "Print execution events as they happen")

	return cmd
}

// runBlocking выполняет blueprint и печатает итог.
func runBlocking(cmd *cobra.Command, out *Output, exec *engine.Executor, bp *domain.Blueprint) error {
	result := exec.Execute(cmd.Context(), bp)

	printRunResult(out, result)
	if !result.Success {
		return fmt.Errorf("workflow failed: %s", result.Error)
	}
	return nil
}

// runStreaming выполняет blueprint, печатая события по мере поступления.
func runStreaming(cmd *cobra.Command, out *Output, exec *engine.Executor, bp *domain.Blueprint) error {
	var result *domain.WorkflowExecutionResult

	for ev := range exec.ExecuteStream(cmd.Context(), bp) {
		printEvent(out, ev)
		if ev.Type.IsTerminal() {
			result = ev.Result
		}
	}

	if result == nil {
		return fmt.Errorf("execution aborted")
	}
	printRunResult(out, result)
	if !result.Success {
		return fmt.Errorf("workflow failed: %s", result.Error)
	}
	return nil
}

// printEvent печатает одно событие выполнения.
func printEvent(out *Output, ev domain.ExecutionEvent) {
	if out.JSONMode() {
		out.JSON(ev)
		return
	}

	switch ev.Type {
	case domain.EventWorkflowStart:
		out.Success(fmt.Sprintf("workflow started: %d nodes", ev.TotalNodes))
	case domain.EventNodeStart:
		out.Success(fmt.Sprintf("  node %s (%s) started", ev.NodeID, ev.NodeType))
	case domain.EventNodeComplete:
		out.Success(fmt.Sprintf("  node %s completed", ev.NodeID))
	case domain.EventNodeError:
		out.Error(fmt.Sprintf("  node %s failed: %s", ev.NodeID, ev.Error))
	case domain.EventWorkflowComplete:
		out.Success("workflow completed")
	case domain.EventWorkflowError:
		out.Error("workflow failed: " + ev.Error)
	}
}

// printRunResult печатает итог выполнения: таблицу узлов и выходы.
func printRunResult(out *Output, result *domain.WorkflowExecutionResult) {
	rows := make([][]string, len(result.NodeResults))
	for i, nr := range result.NodeResults {
		rows[i] = []string{
			nr.NodeID,
			string(nr.Status),
			fmt.Sprintf("%dms", nr.ExecutionTimeMs),
			nr.Error,
		}
	}
	out.Print([]string{"NODE", "STATUS", "TIME", "ERROR"}, rows, result)

	if !out.JSONMode() && len(result.WorkflowOutputs) > 0 {
		out.Success("Workflow outputs:")
		out.JSON(result.WorkflowOutputs)
	}
}
