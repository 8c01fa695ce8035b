// Command pyqa is the CLI entrypoint: it only wires flags to
// internal/cmd's cobra command tree and maps a returned error to a
// process exit code. All analysis logic lives under internal/.
package main

import (
	"fmt"
	"os"

	"github.com/katichai/pyqa/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pyqa:", err)
		os.Exit(1)
	}
}
