package main

import (
	"context"
	"fmt"
	"os"

	"library-cms/internal/cli"
)

func main() {
	if err := cli.NewCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
