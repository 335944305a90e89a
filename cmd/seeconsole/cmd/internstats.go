package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

var internStatsFile string

var internStatsCmd = &cobra.Command{
	Use:   "intern-stats",
	Short: "Report interning statistics for a newline-delimited word list",
	Long: `intern-stats reads words (one per line, from a file or stdin) and
interns each one into a fresh interpreter's per-interpreter scope,
reporting how many distinct interned strings resulted versus the number
of non-empty lines read (empty lines are skipped) — a quick way to see the intern table collapsing
duplicates (§4.3).`,
	RunE: runInternStats,
}

func init() {
	rootCmd.AddCommand(internStatsCmd)
	internStatsCmd.Flags().StringVarP(&internStatsFile, "file", "f", "", "file to read (default: stdin)")
}

func runInternStats(_ *cobra.Command, _ []string) error {
	in := os.Stdin
	if internStatsFile != "" {
		f, err := os.Open(internStatsFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	interp := runtime.New()

	seen := make(map[*runtime.String]struct{})
	total := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		total++
		s := interp.InternASCII(line)
		seen[s] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("lines: %d\n", total)
	fmt.Printf("distinct interned strings: %d\n", len(seen))
	return nil
}
