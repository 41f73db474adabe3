// CLI entry point for GrantsDB.
package main

import (
	"os"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
