package main

import (
	"context"
	"os"

	"github.com/candlelight-lab/quarterdeck/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
