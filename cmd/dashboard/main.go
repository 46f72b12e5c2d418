package main

import (
	"os"

	"skill-dashboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
