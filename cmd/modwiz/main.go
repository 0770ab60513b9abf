package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modwiz/internal/commands"
	"github.com/arthur-debert/modwiz/pkg/display"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.FormatError(err, display.DetectMode(os.Stderr)))
		os.Exit(1)
	}
}
