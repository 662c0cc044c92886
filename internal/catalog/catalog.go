// Package catalog loads the dimension catalogs (tests, sites, platforms), the
// browser/test/platform combos that make up record conditions, and the
// reference baseline values from YAML files.
package catalog

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/perfcube-lab/perfcube/internal/core/filter"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

// ErrUnknownEntry is returned when a requested test, site or platform is not catalogued.
var ErrUnknownEntry = errors.New("unknown catalog entry")

// Entry is one member of a dimension catalog.
type Entry struct {
	Key   string
	Label string

	// Filter selects the records of this entry. Defaults to <dimension> = Key.
	Filter filter.Predicate
}

// Combo is one (browser, test, platform) combination and the records it covers.
type Combo struct {
	Browser  string
	Test     string
	Platform string
	Filter   filter.Predicate
}

// rawEntry is the on-disk YAML shape of an entry.
type rawEntry struct {
	Key    string      `yaml:"key"`
	Label  string      `yaml:"label"`
	Filter filter.Expr `yaml:"filter"`
}

type rawCombo struct {
	Browser  string      `yaml:"browser"`
	Test     string      `yaml:"test"`
	Platform string      `yaml:"platform"`
	Filter   filter.Expr `yaml:"filter"`
}

type rawFile struct {
	Tests      []rawEntry               `yaml:"tests"`
	Sites      []rawEntry               `yaml:"sites"`
	Platforms  []rawEntry               `yaml:"platforms"`
	Combos     []rawCombo               `yaml:"combos"`
	References []storage.ReferenceValue `yaml:"references"`
}

// Catalog is loaded once at startup and read-only afterwards. Entries keep file
// order, files are read in name order.
type Catalog struct {
	dir          string
	tests        []Entry
	sites        []Entry
	platforms    []Entry
	combos       []Combo
	references   []storage.ReferenceValue
	fingerprints map[string]string // file name -> SHA-256 of its content
}

// Load reads every *.yaml / *.yml file in dir. A missing directory is an empty
// catalog. Duplicate keys across files are an error.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		dir:          dir,
		fingerprints: make(map[string]string),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	slog.Info("[Catalog] Loaded",
		"dir", dir,
		"files", len(c.fingerprints),
		"tests", len(c.tests),
		"sites", len(c.sites),
		"platforms", len(c.platforms),
		"combos", len(c.combos),
		"references", len(c.references))
	return c, nil
}

func (c *Catalog) load() error {
	info, err := os.Stat(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("catalog path %q is not a directory", c.dir)
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading catalog dir: %w", err)
	}

	seen := map[string]map[string]string{"test": {}, "site": {}, "platform": {}}
	seenCombo := map[[3]string]string{}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(c.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading catalog file %s: %w", path, err)
		}

		var raw rawFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing catalog file %s: %w", path, err)
		}
		c.fingerprints[e.Name()] = fmt.Sprintf("%x", sha256.Sum256(data))

		for _, group := range []struct {
			field string
			raw   []rawEntry
			into  *[]Entry
		}{
			{"test", raw.Tests, &c.tests},
			{"site", raw.Sites, &c.sites},
			{"platform", raw.Platforms, &c.platforms},
		} {
			for _, r := range group.raw {
				if r.Key == "" {
					return fmt.Errorf("%s: %s entry without key", path, group.field)
				}
				if prev, dup := seen[group.field][r.Key]; dup {
					return fmt.Errorf("%s: duplicate %s %q (first defined in %s)", path, group.field, r.Key, prev)
				}
				seen[group.field][r.Key] = e.Name()
				*group.into = append(*group.into, newEntry(group.field, r))
			}
		}

		for _, r := range raw.Combos {
			if r.Browser == "" || r.Test == "" || r.Platform == "" {
				return fmt.Errorf("%s: combo needs browser, test and platform", path)
			}
			key := [3]string{r.Browser, r.Test, r.Platform}
			if prev, dup := seenCombo[key]; dup {
				return fmt.Errorf("%s: duplicate combo %s/%s/%s (first defined in %s)", path, r.Browser, r.Test, r.Platform, prev)
			}
			seenCombo[key] = e.Name()
			c.combos = append(c.combos, newCombo(r))
		}

		c.references = append(c.references, raw.References...)
	}
	return nil
}

func newEntry(field string, r rawEntry) Entry {
	entry := Entry{Key: r.Key, Label: r.Label, Filter: r.Filter.Predicate}
	if entry.Label == "" {
		entry.Label = r.Key
	}
	if entry.Filter == nil {
		entry.Filter = filter.In(field, r.Key)
	}
	return entry
}

func newCombo(r rawCombo) Combo {
	combo := Combo{Browser: r.Browser, Test: r.Test, Platform: r.Platform, Filter: r.Filter.Predicate}
	if combo.Filter == nil {
		combo.Filter = filter.And{
			filter.In("browser", r.Browser),
			filter.In("test", r.Test),
			filter.In("platform", r.Platform),
		}
	}
	return combo
}

// Tests returns the test catalog.
func (c *Catalog) Tests() []Entry { return append([]Entry(nil), c.tests...) }

// Sites returns the site catalog.
func (c *Catalog) Sites() []Entry { return append([]Entry(nil), c.sites...) }

// Platforms returns the platform catalog.
func (c *Catalog) Platforms() []Entry { return append([]Entry(nil), c.platforms...) }

// Combos returns every combo.
func (c *Catalog) Combos() []Combo { return append([]Combo(nil), c.combos...) }

// Fingerprints returns the SHA-256 of every loaded file, keyed by file name.
func (c *Catalog) Fingerprints() map[string]string {
	out := make(map[string]string, len(c.fingerprints))
	for k, v := range c.fingerprints {
		out[k] = v
	}
	return out
}

// Test looks up a test entry by key.
func (c *Catalog) Test(key string) (Entry, bool) { return find(c.tests, key) }

// Platform looks up a platform entry by key.
func (c *Catalog) Platform(key string) (Entry, bool) { return find(c.platforms, key) }

func find(entries []Entry, key string) (Entry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Condition is the disjunction of the filters of every combo for browser whose
// test is in tests and platform in platforms. An empty browser, tests or
// platforms list does not restrict. No matching combo gives the empty
// disjunction, which matches nothing.
func (c *Catalog) Condition(browser string, tests, platforms []string) filter.Predicate {
	testSet, platformSet := toSet(tests), toSet(platforms)
	cond := filter.Or{}
	for _, combo := range c.combos {
		if browser != "" && combo.Browser != browser {
			continue
		}
		if len(testSet) > 0 && !testSet[combo.Test] {
			continue
		}
		if len(platformSet) > 0 && !platformSet[combo.Platform] {
			continue
		}
		cond = append(cond, combo.Filter)
	}
	return cond
}

// QueryReferences implements storage.ReferenceSource over the catalog's
// reference values, sorted by test, platform and site.
func (c *Catalog) QueryReferences(_ context.Context, tests, platforms []string) ([]storage.ReferenceValue, error) {
	testSet, platformSet := toSet(tests), toSet(platforms)
	var out []storage.ReferenceValue
	for _, r := range c.references {
		if len(testSet) > 0 && !testSet[r.Test] {
			continue
		}
		if len(platformSet) > 0 && !platformSet[r.Platform] {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Test != b.Test {
			return a.Test < b.Test
		}
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		return a.Site < b.Site
	})
	return out, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
