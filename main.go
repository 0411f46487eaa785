package main

import (
	"os"

	"github.com/rainbowedu/rainbow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
