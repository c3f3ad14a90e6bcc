package main

import (
	"os"

	"github.com/Dylan-B-D/vps-manager-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
