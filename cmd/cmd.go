package cmd

import (
	"fmt"
	"os"

	"github.com/rami3l/golox/debug"
	"github.com/rami3l/golox/vm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

func App() (app *cobra.Command) {
	app = &cobra.Command{
		Use:   "golox [path]",
		Short: "Launch the `golox` interpreter",
	}

	app.Flags().SortFlags = true
	defaultVerbosityStr := "INFO"
	verbosity := app.Flags().StringP("verbosity", "v", defaultVerbosityStr, "Logging verbosity")
	debugFlag := app.Flags().Bool("debug", false, "Trace VM dispatch and disassemble compiled chunks")

	app.Run = func(_ *cobra.Command, args []string) {
		verbosityLvl, err := logrus.ParseLevel(*verbosity)
		if err != nil {
			verbosityLvl, _ = logrus.ParseLevel(defaultVerbosityStr)
		}
		logrus.SetLevel(verbosityLvl)
		logrus.SetFormatter(&easy.Formatter{LogFormat: "//DBG// %msg%\n"})
		debug.DEBUG = *debugFlag

		os.Exit(run(args))
	}
	return
}

// run dispatches on argument count per golox's external interface: no
// arguments starts a REPL, exactly one interprets that path, anything else
// is a usage error. It returns the process exit code rather than calling
// os.Exit itself, so App's Run is the only place that actually terminates.
func run(args []string) int {
	vm_ := vm.NewVM()
	switch len(args) {
	case 0:
		if err := vm_.REPL(); err != nil {
			logrus.Error(err)
			return 70
		}
		return 0
	case 1:
		return runFile(vm_, args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: golox [path]")
		return 64
	}
}

func runFile(vm_ *vm.VM, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		logrus.Error(err)
		return 74
	}
	switch vm_.Interpret(string(src)) {
	case vm.CompileError:
		return 65
	case vm.RuntimeError:
		return 70
	default:
		return 0
	}
}
