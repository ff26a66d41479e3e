// main is the entry point for the millpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/openforest/millpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
