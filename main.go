// Package main is the entry point for the primeflix application.
package main

import (
	"github.com/primeflix-cli/primeflix/cmd"
	"github.com/primeflix-cli/primeflix/config"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
