package main

import (
	"fmt"
	"os"

	"github.com/claude/aceest/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failure(err.Error()))
		os.Exit(1)
	}
}
