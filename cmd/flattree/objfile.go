package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/encode"
	"github.com/signadot/flattree/parse"
	"github.com/signadot/flattree/tree"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (any, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// getFlatTree reads a nested document, or a flat map when flat is set.
func getFlatTree(cfg *MainConfig, cc *cli.Context, path string, flat bool) (*flattree.FlatTree, error) {
	v, err := getObjFile(cc, path, cfg.parseOpts(path)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if flat {
		return flattree.FromFlat(v, cfg.ftOpts()...)
	}
	return flattree.New(v, cfg.ftOpts()...)
}

// inputArg returns the single input file, stdin when there is none.
func inputArg(cmd string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: %s takes at most one file, got %v", cli.ErrUsage, cmd, args)
}

func (cfg *MainConfig) output(cc *cli.Context, v any) error {
	if err := encode.Encode(v, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// reportShadow lists shadowed leaves on stderr.
func (cfg *MainConfig) reportShadow(shadow []tree.Leaf) error {
	if len(shadow) == 0 {
		return nil
	}
	theLog.Warn("some leaves could not be placed", "shadowed", len(shadow))
	return encode.List(os.Stderr, slices.Values(shadow), cfg.Symbols, cfg.colorOpts(os.Stderr)...)
}
