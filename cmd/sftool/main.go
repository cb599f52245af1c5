package main

import (
	"os"

	"github.com/hanbit-ml/sftool/cmd/sftool/app"
)

func main() {
	cmd := app.NewSFToolCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
