package root

import (
	"github.com/artuross/tinyc/internal/commands/compile"
	"github.com/artuross/tinyc/internal/commands/configure"
	"github.com/artuross/tinyc/internal/commands/inspect"
	"github.com/artuross/tinyc/internal/commands/repl"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "tinyc",
		Usage: "Compiles (add 2 (subtract 4 2)) into add(2, subtract(4, 2));",
		Commands: []*cli.Command{
			compile.NewCommand(),
			configure.NewCommand(),
			inspect.NewCommand(),
			repl.NewCommand(),
		},
	}
}
