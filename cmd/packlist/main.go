package main

import (
	"os"

	"github.com/prime-mcgowan/packing-list/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
