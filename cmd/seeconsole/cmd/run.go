package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
	"github.com/adamnemecek/see-mirror-sub001/pkg/see"
)

var (
	runA      float64
	runB      float64
	runCompat string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a hand-built native-function program against a fresh interpreter",
	Long: `run demonstrates the full embedder round trip without a source-language
front end: it constructs an interpreter, builds a native "Add" function,
publishes it on the Global object, and evaluates a native "main" program
that calls it with the two operands, printing the resulting value's
Inspect() form.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&runA, "a", 31, "first operand")
	runCmd.Flags().Float64Var(&runB, "b", 9, "second operand")
	runCmd.Flags().StringVar(&runCompat, "compat", "", "textual compatibility flags, e.g. \"= js14 sgmlcom\"")
}

func runRun(_ *cobra.Command, _ []string) error {
	flags := runtime.CompatFlags(0)
	if runCompat != "" {
		parsed, err := runtime.ParseCompatFlags(runCompat, 0)
		if err != nil {
			return err
		}
		flags = parsed
	}

	engine := see.New(flags, see.WithOutput(os.Stdout))

	add := engine.NewFunction("Add", 2, func(i *runtime.Interpreter, this runtime.Value, argv []runtime.Value) runtime.Value {
		var a, b runtime.Value
		i.ParseArgs(argv, "nn", &a, &b)
		return runtime.Number(a.AsNumber() + b.AsNumber())
	})
	engine.Publish(engine.Global(), "Add", runtime.Obj(add), runtime.AttrDontEnum)

	program := engine.NewFunction("main", 0, func(i *runtime.Interpreter, this runtime.Value, argv []runtime.Value) runtime.Value {
		return i.CallArgs(add, this, "nn", runA, runB)
	})

	result, caught, err := engine.Evaluate(program)
	if err != nil {
		if caught != nil {
			return fmt.Errorf("uncaught %s: %s", caught.Family, caught.Message)
		}
		return err
	}

	fmt.Fprintln(engine.Output(), result.Inspect())
	return nil
}
