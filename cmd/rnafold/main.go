// rnafold folds RNA sequences with the ViennaRNA RNAfold tool.
package main

import (
	"os"

	"github.com/wagiedev/rnafold-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
