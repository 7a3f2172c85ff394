package main

import (
	"os"

	"github.com/dimchat/gsp/cmd/gsp/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
