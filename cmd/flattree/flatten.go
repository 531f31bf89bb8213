package main

import (
	"fmt"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		cfg.Flatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	path, err := inputArg("flatten", args)
	if err != nil {
		return err
	}
	ft, err := getFlatTree(cfg.MainConfig, cc, path, false)
	if err != nil {
		return err
	}
	return cfg.output(cc, ft.FlatValue())
}

func unflatten(cfg *UnflattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unflatten.Parse(cc, args)
	if err != nil {
		cfg.Unflatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	path, err := inputArg("unflatten", args)
	if err != nil {
		return err
	}
	ft, err := getFlatTree(cfg.MainConfig, cc, path, true)
	if err != nil {
		return err
	}
	if err := cfg.output(cc, ft.Tree()); err != nil {
		return err
	}
	if err := cfg.reportShadow(ft.Shadow()); err != nil {
		return err
	}
	if cfg.Strict && len(ft.Shadow()) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	sources := make([]any, 0, len(args))
	for _, arg := range args {
		ft, err := getFlatTree(cfg.MainConfig, cc, arg, cfg.Flat)
		if err != nil {
			return err
		}
		sources = append(sources, ft)
	}
	_, res := flattree.Merge(cfg.Symbols, sources...)
	if cfg.Shadow {
		shadow, err := flattree.FromLeaves(slices.Values(res.Shadow), cfg.ftOpts()...)
		if err != nil {
			return err
		}
		return cfg.output(cc, shadow.Flat())
	}
	if err := cfg.output(cc, res.Tree); err != nil {
		return err
	}
	if err := cfg.reportShadow(res.Shadow); err != nil {
		return err
	}
	if cfg.Strict && len(res.Shadow) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
