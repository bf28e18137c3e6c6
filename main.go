package main

import (
	"os"

	"github.com/ChrisPortman/puppet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
