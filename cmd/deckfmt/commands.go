package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "v",
			Aliases:     []string{"version"},
			Description: "format version profile, e.g. 6.2",
			Type:        cli.NamedFuncOpt(cfg.versionOpt, "(version)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "deckfmt").
		WithSynopsis("deckfmt [opts] command [opts]").
		WithDescription("deckfmt is a tool for working with card-deck input files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return deckfmtMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			ListCommand(cfg),
			DumpCommand(cfg),
			DiffCommand(cfg),
			EditCommand(cfg),
			RenumberCommand(cfg),
			CloneCommand(cfg))
}

func deckfmtMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("parse deck files and print them back, colorized on terminals").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("list").
		WithAliases("l", "ls").
		WithSynopsis("list [-where expr] <cells|materials> [files]").
		WithDescription(listDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
	cfg.List = cmd
	return cmd
}

const listDescription = `List numbered records of deck files.

The -where expression filters the listing. For cells it sees number,
material, density, geometry and lattice; for materials it sees number,
atom and components. For example:

  deckfmt list -where 'material != 0 && density < -1.0' cells in.deck
  deckfmt list -where 'number > 100' materials in.deck
`

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dump").
		WithAliases("d").
		WithSynopsis("dump [files]").
		WithDescription("dump the structured model of deck files as yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithSynopsis("diff <a> [b]").
		WithDescription("diff two deck files, or one file against its own re-serialization").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func EditCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EditConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("edit").
		WithAliases("e").
		WithSynopsis("edit -t <record> <patch> <file>").
		WithDescription(editDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return edit(cfg, cc, args)
		})
	cfg.Edit = cmd
	return cmd
}

const editDescription = `Edit one record of a deck with a JSON patch.

The record names its kind and number: c2 is cell 2, m1 is material 1.
The patch is RFC 6902, applied to the record's document form, e.g.:

  deckfmt edit -t c2 '[{"op":"replace","path":"/density","value":-1.5}]' in.deck

Untouched records replay byte for byte; only the edited record is
regenerated.
`

func RenumberCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenumberConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("renumber").
		WithAliases("rn").
		WithSynopsis("renumber <record> <newnumber> <file>").
		WithDescription("move a record to a new number, e.g. renumber m1 5 in.deck").
		WithRun(func(cc *cli.Context, args []string) error {
			return renumber(cfg, cc, args)
		})
	cfg.Renumber = cmd
	return cmd
}

func CloneCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CloneConfig{MainConfig: mainCfg, Start: 1, Step: 1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("clone").
		WithAliases("cl").
		WithSynopsis("clone [-start n] [-step n] <record> <file>").
		WithDescription("deep-copy a record under the first free number").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return clone(cfg, cc, args)
		})
	cfg.Clone = cmd
	return cmd
}
