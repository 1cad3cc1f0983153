package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const appName = "devtool"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  appName,
		Usage: "Fairy Grove developer tooling",
		Commands: []*cli.Command{
			migrateCommand(),
			resetCommand(),
			waitForDBCommand(),
			catalogCommand(),
			scenariosCommand(),
			simulateCommand(),
		},
		CommandNotFound: func(ctx context.Context, cmd *cli.Command, name string) {
			fmt.Fprintf(cmd.Root().ErrWriter, "unknown command %q, see %s --help\n", name, appName)
		},
	}
}
