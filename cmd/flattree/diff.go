package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := getFlatTree(cfg.MainConfig, cc, args[0], cfg.Flat)
	if err != nil {
		return err
	}
	to, err := getFlatTree(cfg.MainConfig, cc, args[1], cfg.Flat)
	if err != nil {
		return err
	}
	changes := libdiff.Diff(from, to)
	if len(changes) == 0 {
		return nil
	}
	if err := libdiff.Write(cc.Out, changes, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
