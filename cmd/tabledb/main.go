// Command tabledb moves tabular data between delimited files and relational
// schemas across interchangeable database backends.
package main

import (
	"os"

	"github.com/tabledb-io/tabledb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
