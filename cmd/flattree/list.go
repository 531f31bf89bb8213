package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree/encode"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	path, err := inputArg("list", args)
	if err != nil {
		return err
	}
	ft, err := getFlatTree(cfg.MainConfig, cc, path, cfg.Flat)
	if err != nil {
		return err
	}
	return encode.List(cc.Out, ft.Leaves(), cfg.Symbols, cfg.colorOpts(cc.Out)...)
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	key := args[0]
	path, err := inputArg("get", args[1:])
	if err != nil {
		return err
	}
	ft, err := getFlatTree(cfg.MainConfig, cc, path, false)
	if err != nil {
		return err
	}
	v, ok := ft.Get(key)
	if !ok {
		// don't encode anything and don't yell either
		return nil
	}
	return cfg.output(cc, v)
}
