package cmd

import (
	"github.com/pkg/errors"

	"github.com/go-drift/recycler/cmd/listdiff/internal/fixture"
)

func init() {
	RegisterCommand(&Command{
		Name:  "diff",
		Short: "Print the edit script of a fixture",
		Long: `Compute the edit script that turns the old list of a fixture into
its new list and print it together with the reconciled list.

Rows marked "old" in the reconciled list kept their previous instance.

Flags:
  --format table|plain   Output format (default from listdiff.yaml, else table)
  --no-moves             Report reorders as removals and insertions`,
		Usage: "listdiff diff [flags] FILE",
		Run:   runDiff,
	})
}

func runDiff(args []string) error {
	flags := newOutputFlags("diff")
	cfg, files, err := flags.parse(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return errors.New("diff requires exactly one fixture file")
	}

	f, err := fixture.Load(files[0])
	if err != nil {
		return err
	}
	writeResult(stdout, cfg.Format, f.Diff(diffOptions(cfg)...))
	return nil
}
