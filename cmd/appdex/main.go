// Package main provides the entry point for the appdex CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/appdex/cmd/appdex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
