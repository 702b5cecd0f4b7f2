package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conduit/internal/catalog"
	"github.com/shaiso/Conduit/internal/compiler"
	"github.com/shaiso/Conduit/internal/domain"
)

// newToolLogger возвращает логгер для локальных команд:
// только warnings и выше, текстом в stderr.
func newToolLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// NewCompileCmd создаёт команду компиляции графа.
func NewCompileCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a workflow graph file into a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			gf, err := LoadGraphFile(args[0])
			if err != nil {
				return err
			}

			comp := compiler.New(compiler.Config{
				Catalog: catalog.Default(),
				Logger:  newToolLogger(),
			})
			result := comp.Compile(compiler.CompileRequest{
				Nodes: gf.Nodes,
				Edges: gf.Edges,
				Name:  gf.Name,
			})

			if len(result.Diagnostics) > 0 {
				printDiagnostics(out, result.Diagnostics)
			}
			if !result.Success {
				return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors()))
			}

			bp := result.Blueprint
			out.Success(fmt.Sprintf("Compiled: %d nodes, %d connections, %d outputs",
				len(bp.Nodes), len(bp.Connections), len(bp.WorkflowOutputs)))
			out.Print(
				[]string{"ORDER", "NODE", "TYPE"},
				executionOrderRows(bp),
				bp,
			)
			return nil
		},
	}
}

// printDiagnostics выводит диагностики компиляции таблицей.
func printDiagnostics(out *Output, diags []domain.CompilationDiagnostic) {
	rows := make([][]string, len(diags))
	for i, d := range diags {
		rows[i] = []string{string(d.Level), d.NodeID, d.Field, d.Message}
	}
	out.Print([]string{"LEVEL", "NODE", "FIELD", "MESSAGE"}, rows, diags)
}

// executionOrderRows формирует строки таблицы порядка выполнения.
func executionOrderRows(bp *domain.Blueprint) [][]string {
	rows := make([][]string, 0, len(bp.ExecutionOrder))
	for i, id := range bp.ExecutionOrder {
		nodeType := ""
		if node, ok := bp.Node(id); ok {
			nodeType = node.Type
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), id, nodeType})
	}
	return rows
}

// NewNodesCmd создаёт команду просмотра каталога типов узлов.
func NewNodesCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List available node types",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()
			cat := catalog.Default()

			type nodeInfo struct {
				Type string              `json:"type"`
				Spec domain.NodeTypeSpec `json:"spec"`
			}

			var infos []nodeInfo
			rows := make([][]string, 0, cat.Size())
			for _, t := range cat.Types() {
				spec, ok := cat.Lookup(t)
				if !ok {
					continue
				}
				infos = append(infos, nodeInfo{Type: t, Spec: spec})
				rows = append(rows, []string{
					t,
					portList(spec.Inputs),
					portList(spec.Outputs),
					spec.Implementation,
				})
			}

			out.Print([]string{"TYPE", "INPUTS", "OUTPUTS", "IMPL"}, rows, infos)
			return nil
		},
	}
}

// portList форматирует список портов как "key:type/shape".
func portList(ports []domain.PortSchema) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprintf("%s:%s/%s", p.Key, p.Type, p.Shape)
	}
	return strings.Join(parts, ", ")
}
