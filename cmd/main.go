package main

import (
	"fmt"
	"os"

	"github.com/cocov-ci/actions/commands"
)

func main() {
	app := commands.NewApp(commands.Deps{})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
