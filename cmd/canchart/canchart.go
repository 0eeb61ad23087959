package main

import (
	"os"

	"github.com/iafilius/CanDashboard/cmd/canchart/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
