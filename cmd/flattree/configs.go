package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/encode"
	"github.com/signadot/flattree/format"
	"github.com/signadot/flattree/parse"
	"github.com/signadot/flattree/symbols"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Sep      string `cli:"name=sep desc='path separator, 1 character'"`
	Brackets string `cli:"name=brackets desc='index brackets, 2 characters'"`
	Quotes   string `cli:"name=quotes desc='key quotes, 1 or 2 characters'"`
	Settings string `cli:"name=settings desc='yaml file with separator, brackets and quotes'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Symbols symbols.Symbols

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// loadSymbols combines the defaults, the settings file and the symbol
// flags, later ones taking precedence.
func (cfg *MainConfig) loadSymbols() error {
	settings := symbols.DefaultSettings()
	if cfg.Settings != "" {
		f, err := os.Open(cfg.Settings)
		if err != nil {
			return err
		}
		defer f.Close()
		settings, err = symbols.LoadSettings(f)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", cfg.Settings, err)
		}
	}
	if cfg.Sep != "" {
		settings.Separator = cfg.Sep
	}
	if cfg.Brackets != "" {
		settings.Brackets = cfg.Brackets
	}
	if cfg.Quotes != "" {
		settings.Quotes = cfg.Quotes
	}
	syms, err := settings.Symbols()
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Symbols = syms
	return nil
}

func (cfg *MainConfig) ftOpts() []flattree.Option {
	return []flattree.Option{flattree.WithSymbols(cfg.Symbols)}
}

// parseOpts picks the input format from the flags, then from the file
// name.  YAML is the fallback as it reads JSON too.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat := format.YAMLFormat
	if f, ok := format.FromPath(path); ok {
		fmat = f
	}
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{parse.ParseFormat(fmat)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.JSONFormat
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return append(cfg.colorOpts(w), encode.EncodeFormat(fmat))
}

// colorOpts colors output when -color is given, or when it is not given
// and w is a terminal.
func (cfg *MainConfig) colorOpts(w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

// colors is colorOpts for writers which take *encode.Colors.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if len(cfg.colorOpts(w)) == 0 {
		return nil
	}
	return encode.NewColors()
}

type FlattenConfig struct {
	*MainConfig

	Flatten *cli.Command
}

type UnflattenConfig struct {
	*MainConfig
	Strict bool `cli:"name=strict desc='exit 1 when some leaves are shadowed'"`

	Unflatten *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Strict bool `cli:"name=strict desc='exit 1 when some leaves are shadowed'"`
	Flat   bool `cli:"name=f aliases=flat desc='inputs are flat maps'"`
	Shadow bool `cli:"name=shadow desc='output the shadow instead of the tree'"`

	Merge *cli.Command
}

type ListConfig struct {
	*MainConfig
	Flat bool `cli:"name=f aliases=flat desc='input is a flat map'"`

	List *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Tree bool `cli:"name=t aliases=tree desc='output the tree built from matching leaves'"`

	Filter *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Flat bool `cli:"name=f aliases=flat desc='inputs are flat maps'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m aliases=merge desc='the patch is a json merge patch'"`
	Flat  bool `cli:"name=f aliases=flat desc='patch the flat map of the input'"`

	Patch *cli.Command
}
