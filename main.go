package main

import (
	"fmt"
	"os"

	"fjacquet/swift-csv/cmd/batch"
	"fjacquet/swift-csv/cmd/bic"
	"fjacquet/swift-csv/cmd/extract"
	"fjacquet/swift-csv/cmd/inspect"
	"fjacquet/swift-csv/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(bic.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
