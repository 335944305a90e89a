package cmd

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

var gcCount int

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Allocate finalizable objects and force a collection pass",
	Long: `gc allocates N finalizable blocks through the memory manager's
alloc_finalize channel, drops every reference, forces a collection, and
blocks on FinalizerBarrier until every finalizer queued before the call
has run, then reports how many ran (§8 scenario 4).`,
	RunE: runGC,
}

func init() {
	rootCmd.AddCommand(gcCmd)
	gcCmd.Flags().IntVarP(&gcCount, "count", "n", 100, "number of finalizable objects to allocate")
}

type gcPayload struct{ tag int }

func runGC(_ *cobra.Command, _ []string) error {
	interp := runtime.New()

	var finalized int64
	for n := 0; n < gcCount; n++ {
		runtime.AllocFinalize(interp, func(p *gcPayload) {
			atomic.AddInt64(&finalized, 1)
		})
	}

	runtime.Collect(interp)
	runtime.FinalizerBarrier()

	fmt.Printf("allocated: %d\n", gcCount)
	fmt.Printf("finalized: %d\n", atomic.LoadInt64(&finalized))
	return nil
}
