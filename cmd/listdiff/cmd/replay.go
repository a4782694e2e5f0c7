package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/go-drift/recycler/cmd/listdiff/internal/config"
	"github.com/go-drift/recycler/cmd/listdiff/internal/fixture"
	"github.com/go-drift/recycler/pkg/delegate"
	rerrors "github.com/go-drift/recycler/pkg/errors"
	"github.com/go-drift/recycler/pkg/recycler"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a fixture through a list adapter",
		Long: `Submit the old list of a fixture to a list adapter, then the new list,
and print every notification the adapter sends to its host. The final list
is then bound to one view per row and printed as the adapter's snapshot.

Flags:
  --format table|plain   Output format
  --no-moves             Diff without move detection
  -V, --verbose          Log adapter activity to stderr`,
		Usage: "listdiff replay [flags] FILE",
		Run:   runReplay,
	})
}

// consoleHost is a recycler.Host that prints notifications.
type consoleHost struct {
	w     io.Writer
	views int
}

type consoleView struct {
	ctx context.Context
}

func (v consoleView) Context() context.Context { return v.ctx }

func (h *consoleHost) CreateView(kind delegate.Kind) delegate.View {
	h.views++
	return consoleView{ctx: context.Background()}
}

func (h *consoleHost) NotifyReset() {
	fmt.Fprintln(h.w, "  reset")
}

func (h *consoleHost) NotifyInserted(pos int) {
	fmt.Fprintf(h.w, "  inserted %d\n", pos)
}

func (h *consoleHost) NotifyRemoved(pos int) {
	fmt.Fprintf(h.w, "  removed %d\n", pos)
}

func (h *consoleHost) NotifyMoved(from, to int) {
	fmt.Fprintf(h.w, "  moved %d -> %d\n", from, to)
}

func (h *consoleHost) NotifyChanged(pos int, payload any) {
	if payload == nil {
		fmt.Fprintf(h.w, "  changed %d\n", pos)
		return
	}
	fmt.Fprintf(h.w, "  changed %d (%v)\n", pos, payload)
}

func runReplay(args []string) error {
	flags := newOutputFlags("replay")
	cfg, files, err := flags.parse(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return errors.New("replay requires exactly one fixture file")
	}

	f, err := fixture.Load(files[0])
	if err != nil {
		return err
	}

	host := &consoleHost{w: stdout}
	adapter := recycler.NewAdapter(host, nil, adapterOptions(cfg)...)

	fmt.Fprintln(stdout, "submit old:")
	adapter.Submit(f.OldRows())
	fmt.Fprintln(stdout, "submit new:")
	adapter.Submit(f.NewRows())
	fmt.Fprintln(stdout)

	for i, n := 0, adapter.Count(); i < n; i++ {
		slot := adapter.CreateSlot(adapter.ViewType(i))
		adapter.BindSlot(slot, i, nil)
	}
	writeSnapshot(cfg.Format, adapter, f, host.views)
	return nil
}

func adapterOptions(cfg *config.Resolved) []recycler.Option {
	opts := []recycler.Option{recycler.WithHookRecovery()}
	if !cfg.DetectMoves {
		opts = append(opts, recycler.WithoutMoveDetection())
	}
	if cfg.Verbose {
		rerrors.SetHandler(&rerrors.LogHandler{Verbose: true})
		opts = append(opts, recycler.WithLogger(rerrors.StderrLogger(1).WithName("listdiff")))
	}
	return opts
}

func writeSnapshot(format string, adapter *recycler.Adapter, f *fixture.Fixture, views int) {
	retained := make([]bool, adapter.Count())
	for i := range retained {
		for _, old := range f.Old {
			if delegate.SameInstance(adapter.Item(i), old) {
				retained[i] = true
				break
			}
		}
	}

	if format == config.FormatPlain {
		for i, n := 0, adapter.Count(); i < n; i++ {
			fmt.Fprintf(stdout, "%d %s kind=%d id=%d %s\n", i, rowName(adapter.Item(i)),
				adapter.ViewType(i), adapter.ItemID(i), instance(retained, i))
		}
		fmt.Fprintf(stdout, "views %d\n", views)
		return
	}

	tw := itemsWriter(adapter.Items(), retained)
	tw.SetTitle("ADAPTER SNAPSHOT")
	tw.SetCaption("%d views created", views)
	fmt.Fprintln(stdout, tw.Render())
}
