package main

import (
	"os"

	"github.com/apimgr/homunculus/src/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
