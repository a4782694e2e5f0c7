package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/go-drift/recycler/cmd/listdiff/internal/config"
	"github.com/go-drift/recycler/pkg/diff"
)

// outputFlags are the flags shared by every command.
type outputFlags struct {
	set     *pflag.FlagSet
	format  string
	noMoves bool
	verbose bool
}

func newOutputFlags(name string) *outputFlags {
	f := &outputFlags{set: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	f.set.SetOutput(stderr)
	f.set.StringVar(&f.format, "format", config.FormatTable, "Output format (table or plain)")
	f.set.BoolVar(&f.noMoves, "no-moves", false, "Report reorders as removals and insertions")
	f.set.BoolVarP(&f.verbose, "verbose", "V", false, "Log adapter activity to stderr")
	return f
}

// parse parses args and merges the flags over the project configuration.
// Flags win over listdiff.yaml.
func (f *outputFlags) parse(args []string) (*config.Resolved, []string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if f.set.Changed("format") {
		if err := config.ValidateFormat(f.format); err != nil {
			return nil, nil, err
		}
		cfg.Format = f.format
	}
	if f.set.Changed("no-moves") {
		cfg.DetectMoves = !f.noMoves
	}
	if f.set.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, f.set.Args(), nil
}

// loadConfig reads --config when given, or listdiff.yaml at the project
// root. Running outside a Go module is not an error.
func loadConfig() (*config.Resolved, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine working directory")
	}
	root, findErr := config.FindProjectRoot(wd)
	if findErr != nil {
		root = ""
	}

	var raw *config.Config
	switch {
	case configPath != "":
		raw, err = config.Load(configPath)
	case root != "":
		raw, err = config.LoadOptional(root)
	default:
		raw = &config.Config{}
	}
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(root, raw)
	if err != nil {
		return nil, err
	}
	// An explicit config file names fixtures relative to itself.
	if configPath != "" && raw.Fixtures != "" {
		cfg.FixturesDir = filepath.Join(filepath.Dir(configPath), raw.Fixtures)
	}
	return cfg, nil
}

func diffOptions(cfg *config.Resolved) []diff.Option {
	if cfg.DetectMoves {
		return nil
	}
	return []diff.Option{diff.DetectMoves(false)}
}
