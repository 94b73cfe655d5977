// Euriumctl manages Eurium contracts: deploys them, sends administrative
// transactions and runs the event indexer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
