package main

import (
	"os"

	"mruiz/sales-kpi/cmd/root"
)

func init() {
	root.Init()
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.WithError(err).Error("Run failed")
		os.Exit(1)
	}
}
