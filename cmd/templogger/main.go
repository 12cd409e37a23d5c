//go:build !rp2040 && !rp2350

package main

import (
	"fmt"
	"os"

	"templogger-go/cmd/templogger/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "templogger:", err)
		os.Exit(1)
	}
}
