// Command flexsql renders YAML query documents as SQL for a chosen dialect.
//
// Usage:
//
//	flexsql render -d oracle query.yaml
//	flexsql render -c flexsql.yaml -s reporting --format json query.yaml
//	flexsql dialects
package main

import (
	"fmt"
	"os"

	"github.com/Konsultn-Engineering/flexsql/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
