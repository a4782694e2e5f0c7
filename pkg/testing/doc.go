// Package testing provides a simulated recycling host for adapter tests.
//
// # Quick Start
//
// Create a tester, submit rows, lay them out and make assertions:
//
//	func TestMyList(t *testing.T) {
//	    tester := recyclertest.NewListTesterWithT(t)
//	    tester.Submit(&recyclertest.TextRow{Type: 1, Text: "a"})
//	    if err := tester.Layout(); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if got := tester.View(0).Text; got != "a" {
//	        t.Errorf("row 0 rendered %q", got)
//	    }
//	}
//
// [ListTester] behaves like a recycling list view: it applies the adapter's
// notifications to its on-screen slots, recycles removed slots into a
// per-kind pool and rebinds changed positions with the payloads it collected.
// [ListTester.Verify] checks that every on-screen slot holds the row the
// adapter reports for its position.
//
// [FakeHost] only records notifications and created views, for tests that
// drive the slot callbacks by hand.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import recyclertest "github.com/go-drift/recycler/pkg/testing"
package testing
