package main

import (
	"os"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
