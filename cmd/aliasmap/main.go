// Package main provides the aliasmap CLI, which generates the node id alias
// table header for nodesetexporter.
package main

import (
	"os"

	"github.com/nodesetexporter/aliasmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
