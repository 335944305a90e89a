package main

import (
	"fmt"
	"os"

	"github.com/adamnemecek/see-mirror-sub001/cmd/seeconsole/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
