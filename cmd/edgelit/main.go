// Command edgelit is the animated window border daemon for X11.
package main

import (
	"os"

	"github.com/edgelit/edgelit/cmd/edgelit/commands"
)

func main() {
	if err := commands.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
