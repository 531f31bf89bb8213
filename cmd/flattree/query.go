package main

import (
	"fmt"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/filter"
	"github.com/signadot/flattree/query"
)

func queryCmd(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, a JSONPath expression", cli.ErrUsage)
	}
	expr := args[0]
	if expr != "" && expr[0] != '$' {
		expr = "$" + expr
	}
	path, err := inputArg("query", args[1:])
	if err != nil {
		return err
	}
	v, err := getObjFile(cc, path, cfg.parseOpts(path)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}
	res, err := query.Select(v, expr)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg.output(cc, res)
}

func filterCmd(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires one argument, an expression", cli.ErrUsage)
	}
	f, err := filter.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	path, err := inputArg("filter", args[1:])
	if err != nil {
		return err
	}
	ft, err := getFlatTree(cfg.MainConfig, cc, path, false)
	if err != nil {
		return err
	}
	leaves, err := f.Apply(ft)
	if err != nil {
		return err
	}
	res, err := flattree.FromLeaves(slices.Values(leaves), cfg.ftOpts()...)
	if err != nil {
		return err
	}
	if cfg.Tree {
		return cfg.output(cc, res.Tree())
	}
	return cfg.output(cc, res.FlatValue())
}
