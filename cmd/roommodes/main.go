package main

import (
	"os"

	"github.com/RMahshie/roommodes/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
