package main

import (
	"os"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
