package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func ftMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setup(); err != nil {
		return usageExit(cc, cfg.Main, err)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	return usageExit(cc, sub, sub.Run(cc, args[1:]))
}

// setup checks the global flags and loads the path symbols.
func (cfg *MainConfig) setup() error {
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: -j and -y are mutually exclusive", cli.ErrUsage)
	}
	return cfg.loadSymbols()
}

// usageExit prints the usage of cmd and exits when err is a usage error.
func usageExit(cc *cli.Context, cmd *cli.Command, err error) error {
	if !errors.Is(err, cli.ErrUsage) {
		return err
	}
	cmd.Usage(cc, err)
	os.Exit(cmd.Exit(cc, err))
	return nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut != nil {
		cfg.CloseOut()
	}
}

// outOpt redirects output to a file; "-" keeps stdout.
func (cfg *MainConfig) outOpt(cc *cli.Context, path string) (any, error) {
	cfg.Out = path
	if path == "-" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
