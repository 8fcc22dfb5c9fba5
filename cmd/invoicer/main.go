package main

import (
	"fmt"
	"os"

	"github.com/smallbiznis/invoicer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "invoicer: %v\n", err)
		os.Exit(1)
	}
}
