// Command pfl manages a brokerage ledger and reports realized profits.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/rigaml/portfolio/cmd"
)

func main() {
	// Shell completion, a no-op outside of completion mode.
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// Unknown subcommands may be provided as external pfl-<name> binaries.
	if name := flag.Arg(0); name != "" && !registered(name) {
		if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func completion() {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completer := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
			"rates-file":  predict.Files("*.jsonl"),
			"currency":    predict.Set{"EUR", "USD", "GBP"},
		},
	}
	completer.Complete("pfl")
}
