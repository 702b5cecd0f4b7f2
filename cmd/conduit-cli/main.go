// Conduit CLI — инструмент командной строки для локальной работы
// с workflow-графами.
//
// Использование:
//
//	conduit [--json] <command> [flags]
//
// Команды:
//
//	compile   Компиляция графа в blueprint
//	run       Компиляция и выполнение графа
//	nodes     Каталог типов узлов
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conduit/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "conduit",
		Short:         "Conduit CLI — workflow graph compiler and runner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewCompileCmd(outputFn),
		cli.NewRunCmd(outputFn),
		cli.NewNodesCmd(outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
