// Package fixture loads list-diff fixtures: a pair of row lists and,
// optionally, the edit script expected between them.
package fixture

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/recycler/pkg/delegate"
	"github.com/go-drift/recycler/pkg/diff"
)

// SupportedMajor is the fixture format major version this build reads.
const SupportedMajor = "v1"

// Row is one row of a fixture list.
type Row struct {
	// Key names the row. Rows of equal key and kind are the same logical row.
	Key     string `yaml:"key"`
	Type    int    `yaml:"kind"`
	Content string `yaml:"content,omitempty"`
	// Payload is what the previous row reports when replaced by this one.
	Payload string `yaml:"payload,omitempty"`
	ID      *int64 `yaml:"id,omitempty"`
}

func (r *Row) Kind() delegate.Kind { return delegate.Kind(r.Type) }

func (r *Row) ItemID() (int64, bool) {
	if r.ID == nil {
		return 0, false
	}
	return *r.ID, true
}

func (r *Row) SameIdentity(other delegate.Delegate) bool {
	o, ok := other.(*Row)
	return ok && o.Key == r.Key && o.Type == r.Type
}

func (r *Row) SameContent(other delegate.Delegate) bool {
	o, ok := other.(*Row)
	return ok && o.Content == r.Content
}

func (r *Row) ChangePayload(other delegate.Delegate) any {
	o, ok := other.(*Row)
	if !ok || o.Payload == "" {
		return nil
	}
	return o.Payload
}

func (r *Row) String() string {
	if r.Content == "" {
		return r.Key
	}
	return fmt.Sprintf("%s(%s)", r.Key, r.Content)
}

// Fixture is a parsed fixture file.
type Fixture struct {
	Name    string   `yaml:"-"`
	Version string   `yaml:"version"`
	Old     []*Row   `yaml:"old"`
	New     []*Row   `yaml:"new"`
	Expect  []string `yaml:"expect,omitempty"`
}

// Load reads and validates the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read fixture %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid fixture %s", path)
	}
	f.Name = path
	return f, nil
}

// Parse decodes and validates a fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "cannot decode yaml")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the format version and that every row has a key.
func (f *Fixture) Validate() error {
	if !semver.IsValid(f.Version) {
		return errors.Errorf("version %q is not a semantic version", f.Version)
	}
	if major := semver.Major(f.Version); major != SupportedMajor {
		return errors.Errorf("unsupported fixture version %s (want %s.x.x)", f.Version, SupportedMajor)
	}
	if err := validateRows("old", f.Old); err != nil {
		return err
	}
	return validateRows("new", f.New)
}

func validateRows(list string, rs []*Row) error {
	for i, r := range rs {
		if r == nil || strings.TrimSpace(r.Key) == "" {
			return errors.Errorf("%s[%d]: missing key", list, i)
		}
	}
	return nil
}

// OldRows returns the previous list as delegates.
func (f *Fixture) OldRows() []delegate.Delegate {
	return rows(f.Old)
}

// NewRows returns the next list as delegates.
func (f *Fixture) NewRows() []delegate.Delegate {
	return rows(f.New)
}

func rows(rs []*Row) []delegate.Delegate {
	out := make([]delegate.Delegate, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// Diff computes the edit script from the old list to the new one.
func (f *Fixture) Diff(opts ...diff.Option) diff.Result {
	return diff.Compute(f.OldRows(), f.NewRows(), opts...)
}

// Check verifies that res transforms the old list into the new one and, when
// the fixture lists expected operations, that the script matches them.
func (f *Fixture) Check(res diff.Result) error {
	keys := func(rs []*Row) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = fmt.Sprintf("%d/%s", r.Type, r.Key)
		}
		return out
	}

	want := keys(f.New)
	got, err := applyKeys(res.Script, keys(f.Old), want)
	if err != nil {
		return err
	}
	if d := cmp.Diff(want, got); d != "" {
		return errors.Errorf("script does not produce the new list: -want, +got:\n%s", d)
	}

	if f.Expect != nil {
		if d := cmp.Diff(f.Expect, res.Script.Strings()); d != "" {
			return errors.Errorf("unexpected script: -want, +got:\n%s", d)
		}
	}
	return nil
}

func applyKeys(s diff.Script, old, next []string) (out []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("script is out of range: %v", r)
		}
	}()
	for _, op := range s {
		if op.Kind == diff.OpInsert && (op.Pos < 0 || op.Pos >= len(next)) {
			return nil, errors.Errorf("%s: no row at position %d of the new list", op, op.Pos)
		}
	}
	return diff.Apply(s, old, func(op diff.Op) string { return next[op.Pos] }), nil
}
