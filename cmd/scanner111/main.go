package main

import (
	"os"

	"github.com/scanner111/scanner111/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
