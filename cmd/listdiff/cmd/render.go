package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/go-drift/recycler/cmd/listdiff/internal/config"
	"github.com/go-drift/recycler/cmd/listdiff/internal/fixture"
	"github.com/go-drift/recycler/pkg/delegate"
	"github.com/go-drift/recycler/pkg/diff"
)

// scriptWriter returns a table of the edit script, one operation per row.
func scriptWriter(s diff.Script) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("EDIT SCRIPT")
	tw.AppendHeader(table.Row{"#", "OP", "POS", "TO", "PAYLOAD"})
	for i, op := range s {
		to := ""
		if op.Kind == diff.OpMove {
			to = strconv.Itoa(op.To)
		}
		payload := ""
		if op.Payload != nil {
			payload = fmt.Sprint(op.Payload)
		}
		tw.AppendRow(table.Row{i + 1, op.Kind.String(), op.Pos, to, payload})
	}
	tw.AppendFooter(table.Row{"", "TOTAL", len(s)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight}, // #
		{Number: 2, Align: text.AlignLeft},  // OP
		{Number: 3, Align: text.AlignRight}, // POS
		{Number: 4, Align: text.AlignRight}, // TO
		{Number: 5, Align: text.AlignLeft},  // PAYLOAD
	})
	tw.SetStyle(table.StyleLight)
	return tw
}

// itemsWriter returns a table of the reconciled list.
func itemsWriter(items []delegate.Delegate, retained []bool) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("RECONCILED LIST")
	tw.AppendHeader(table.Row{"POS", "ROW", "KIND", "ID", "INSTANCE"})
	for i, item := range items {
		id := "-"
		if v, ok := delegate.ItemID(item); ok {
			id = strconv.FormatInt(v, 10)
		}
		tw.AppendRow(table.Row{i, rowName(item), int(item.Kind()), id, instance(retained, i)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},  // POS
		{Number: 2, Align: text.AlignLeft},   // ROW
		{Number: 3, Align: text.AlignRight},  // KIND
		{Number: 4, Align: text.AlignRight},  // ID
		{Number: 5, Align: text.AlignCenter}, // INSTANCE
	})
	tw.SetStyle(table.StyleLight)
	return tw
}

// writeResult prints res in the configured format.
func writeResult(w io.Writer, format string, res diff.Result) {
	if format == config.FormatPlain {
		for _, line := range res.Script.Strings() {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		for i, item := range res.Items {
			fmt.Fprintf(w, "%d %s %s\n", i, rowName(item), instance(res.Retained, i))
		}
		return
	}

	if res.Reset {
		fmt.Fprintln(w, "old list is empty: the host is reset")
	}
	fmt.Fprintln(w, scriptWriter(res.Script).Render())
	fmt.Fprintln(w, itemsWriter(res.Items, res.Retained).Render())
}

func instance(retained []bool, i int) string {
	if i < len(retained) && retained[i] {
		return "old"
	}
	return "new"
}

func rowName(d delegate.Delegate) string {
	if r, ok := d.(*fixture.Row); ok {
		return r.String()
	}
	return fmt.Sprintf("%T", d)
}
