package cmd

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/go-drift/recycler/cmd/listdiff/internal/config"
	"github.com/go-drift/recycler/cmd/listdiff/internal/fixture"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Verify fixtures",
		Long: `Verify that the edit script of every fixture turns its old list into
its new list and, when the fixture has an "expect" list, that the script
matches it exactly.

With no files, checks every *.yaml file in the "fixtures" directory named
by listdiff.yaml.

Flags:
  --format table|plain   Output format
  --no-moves             Diff without move detection`,
		Usage: "listdiff check [flags] [FILE...]",
		Run:   runCheck,
	})
}

// checkResult is the outcome of checking one fixture.
type checkResult struct {
	name string
	ops  int
	err  error
}

func runCheck(args []string) error {
	flags := newOutputFlags("check")
	cfg, files, err := flags.parse(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if files, err = fixtureFiles(cfg); err != nil {
			return err
		}
	}

	results := make([]checkResult, 0, len(files))
	failed := 0
	for _, name := range files {
		r := checkFile(name, cfg)
		if r.err != nil {
			failed++
		}
		results = append(results, r)
	}
	writeCheckResults(cfg.Format, results)

	if failed > 0 {
		return errors.Errorf("%d of %d fixtures failed", failed, len(results))
	}
	return nil
}

func checkFile(name string, cfg *config.Resolved) checkResult {
	f, err := fixture.Load(name)
	if err != nil {
		return checkResult{name: name, err: err}
	}
	res := f.Diff(diffOptions(cfg)...)
	return checkResult{name: name, ops: len(res.Script), err: f.Check(res)}
}

func fixtureFiles(cfg *config.Resolved) ([]string, error) {
	if cfg.FixturesDir == "" {
		return nil, errors.New("no fixture files given and no fixtures directory configured")
	}
	files, err := filepath.Glob(filepath.Join(cfg.FixturesDir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list %s", cfg.FixturesDir)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no fixtures in %s", cfg.FixturesDir)
	}
	slices.Sort(files)
	return files, nil
}

func writeCheckResults(format string, results []checkResult) {
	if format == config.FormatPlain {
		for _, r := range results {
			if r.err != nil {
				fmt.Fprintf(stdout, "FAIL %s\n  %v\n", r.name, r.err)
				continue
			}
			fmt.Fprintf(stdout, "ok   %s (%d ops)\n", r.name, r.ops)
		}
		return
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"FIXTURE", "OPS", "RESULT"})
	for _, r := range results {
		result := "ok"
		if r.err != nil {
			result = r.err.Error()
		}
		tw.AppendRow(table.Row{r.name, r.ops, result})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},  // FIXTURE
		{Number: 2, Align: text.AlignRight}, // OPS
		{Number: 3, Align: text.AlignLeft},  // RESULT
	})
	tw.SetStyle(table.StyleLight)
	fmt.Fprintln(stdout, tw.Render())
}
