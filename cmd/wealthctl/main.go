package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/simaogato/wealthtrack/internal/config"
)

func main() {
	cfg := config.Load()
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range commands(cfg) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func commands(cfg *config.Config) []subcommands.Command {
	return []subcommands.Command{
		&importCmd{remote: newRemote(cfg)},
		&exportCmd{remote: newRemote(cfg)},
		&entriesCmd{remote: newRemote(cfg)},
		&addEntryCmd{remote: newRemote(cfg)},
		&timelineCmd{remote: newRemote(cfg)},
		&expensesCmd{remote: newRemote(cfg)},
		&logExpenseCmd{remote: newRemote(cfg)},
		&simulateCmd{remote: newRemote(cfg)},
	}
}
