// Command minijavac is the Mini-Java compiler and virtual machine driver.
package main

import (
	"os"

	"github.com/mjc-lang/minijavac/cmd/minijavac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
