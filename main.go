package main

import (
	"context"
	"os"

	"github.com/preferencial-eng/incendio/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
