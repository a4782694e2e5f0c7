// Command listdiff inspects the edit scripts the recycler diff engine
// produces for YAML list fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/recycler/cmd/listdiff/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
