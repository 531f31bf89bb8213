package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/patch"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires one argument, a patch file", cli.ErrUsage)
	}
	patchJSON, err := readFile(cc, args[0])
	if err != nil {
		return err
	}
	path, err := inputArg("patch", args[1:])
	if err != nil {
		return err
	}
	if path == "-" && args[0] == "-" {
		return fmt.Errorf("%w: patch and document cannot both be stdin", cli.ErrUsage)
	}
	doc, err := getObjFile(cc, path, cfg.parseOpts(path)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}
	var ft *flattree.FlatTree
	if cfg.Flat {
		// pointers address leaves by their flat paths, "/a.b[0]".
		ft, err = flattree.New(doc, cfg.ftOpts()...)
		if err != nil {
			return err
		}
		doc = ft.FlatValue()
	}
	apply := patch.Apply
	if cfg.Merge {
		apply = patch.Merge
	}
	res, err := apply(doc, patchJSON)
	if err != nil {
		return err
	}
	if !cfg.Flat {
		return cfg.output(cc, res)
	}
	ft, err = flattree.FromFlat(res, cfg.ftOpts()...)
	if err != nil {
		return err
	}
	if err := cfg.output(cc, ft.Tree()); err != nil {
		return err
	}
	return cfg.reportShadow(ft.Shadow())
}
