package main

import (
	"fmt"
	"os"

	"cvscore-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cvscore: %v\n", err)
		os.Exit(1)
	}
}
