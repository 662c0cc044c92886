package cube

import (
	"fmt"
	"strconv"
	"time"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	"github.com/perfcube-lab/perfcube/internal/core/filter"
)

// DomainType distinguishes categorical from ordered domains.
type DomainType string

const (
	DomainSet   DomainType = "set"
	DomainRange DomainType = "range"
)

// Domain is the fixed, ordered sequence of keys along one edge.
// Its length and order never change for the lifetime of a cube.
type Domain interface {
	Type() DomainType
	Len() int

	// Label is the display/lookup name of position i.
	Label(i int) string

	// Key is the underlying key of position i: the partition value for set
	// domains, a time.Time for range domains.
	Key(i int) interface{}

	// Lookup finds the position of a label.
	Lookup(label string) (int, bool)

	// Locate assigns a record to a position. A record that belongs nowhere is
	// reported with ok=false and is dropped by the caller.
	Locate(rec *v1.Record) (int, bool)
}

// Bucket is one partition of a set domain.
type Bucket struct {
	Label string
	Value string

	// Where selects the records of this bucket. When nil, records whose domain
	// field equals Value are selected.
	Where filter.Predicate
}

// SetDomain buckets records by predicate, first match wins.
type SetDomain struct {
	field   string
	buckets []Bucket
	index   map[string]int
}

// NewSetDomain builds a set domain over field. Labels must be unique.
func NewSetDomain(field string, buckets ...Bucket) (*SetDomain, error) {
	d := &SetDomain{
		field:   field,
		buckets: append([]Bucket(nil), buckets...),
		index:   make(map[string]int, len(buckets)),
	}
	for i, b := range d.buckets {
		if b.Label == "" {
			return nil, fmt.Errorf("set domain %q: bucket %d has no label", field, i)
		}
		if _, dup := d.index[b.Label]; dup {
			return nil, fmt.Errorf("set domain %q: duplicate label %q", field, b.Label)
		}
		d.index[b.Label] = i
	}
	return d, nil
}

// Type implements Domain.
func (d *SetDomain) Type() DomainType { return DomainSet }

// Len implements Domain.
func (d *SetDomain) Len() int { return len(d.buckets) }

// Label implements Domain.
func (d *SetDomain) Label(i int) string { return d.buckets[i].Label }

// Key implements Domain.
func (d *SetDomain) Key(i int) interface{} { return d.buckets[i].Value }

// Bucket returns the i-th bucket.
func (d *SetDomain) Bucket(i int) Bucket { return d.buckets[i] }

// Lookup implements Domain.
func (d *SetDomain) Lookup(label string) (int, bool) {
	i, ok := d.index[label]
	return i, ok
}

// Locate implements Domain. Buckets are tried in declaration order.
func (d *SetDomain) Locate(rec *v1.Record) (int, bool) {
	for i, b := range d.buckets {
		if b.Where != nil {
			if b.Where.Match(rec) {
				return i, true
			}
			continue
		}
		if v, ok := rec.Attr(d.field); ok && v == b.Value {
			return i, true
		}
	}
	return 0, false
}

// RangeDomain is an ordered list of instants supplied by the caller. Records are
// assigned by exact membership of their push timestamp, truncated to the
// domain granularity; timestamps outside the list are dropped.
type RangeDomain struct {
	keys        []time.Time
	granularity time.Duration
	index       map[int64]int
	labels      map[string]int
}

// NewRangeDomain builds a range domain. Keys must be strictly increasing after
// truncation to granularity. A zero granularity means exact timestamps.
func NewRangeDomain(keys []time.Time, granularity time.Duration) (*RangeDomain, error) {
	d := &RangeDomain{
		keys:        make([]time.Time, len(keys)),
		granularity: granularity,
		index:       make(map[int64]int, len(keys)),
		labels:      make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		t := d.normalize(k)
		if i > 0 && !t.After(d.keys[i-1]) {
			return nil, fmt.Errorf("range domain: key %d (%s) is not after key %d (%s)",
				i, t.Format(time.RFC3339), i-1, d.keys[i-1].Format(time.RFC3339))
		}
		d.keys[i] = t
		d.index[t.UnixNano()] = i
		d.labels[d.format(t)] = i
	}
	return d, nil
}

func (d *RangeDomain) normalize(t time.Time) time.Time {
	t = t.UTC()
	if d.granularity > 0 {
		t = t.Truncate(d.granularity)
	}
	return t
}

func (d *RangeDomain) format(t time.Time) string {
	if d.granularity > 0 && d.granularity%(24*time.Hour) == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// Type implements Domain.
func (d *RangeDomain) Type() DomainType { return DomainRange }

// Len implements Domain.
func (d *RangeDomain) Len() int { return len(d.keys) }

// Label implements Domain.
func (d *RangeDomain) Label(i int) string { return d.format(d.keys[i]) }

// Key implements Domain.
func (d *RangeDomain) Key(i int) interface{} { return d.keys[i] }

// Time returns the i-th key.
func (d *RangeDomain) Time(i int) time.Time { return d.keys[i] }

// Granularity is the truncation applied to keys and record timestamps.
func (d *RangeDomain) Granularity() time.Duration { return d.granularity }

// Lookup implements Domain. Labels are dates for day-granular domains, RFC 3339
// timestamps otherwise.
func (d *RangeDomain) Lookup(label string) (int, bool) {
	if i, ok := d.labels[label]; ok {
		return i, true
	}
	if t, err := time.Parse(time.RFC3339, label); err == nil {
		i, ok := d.index[d.normalize(t).UnixNano()]
		return i, ok
	}
	return 0, false
}

// Locate implements Domain.
func (d *RangeDomain) Locate(rec *v1.Record) (int, bool) {
	if rec.PushTimestamp.IsZero() {
		return 0, false
	}
	i, ok := d.index[d.normalize(rec.PushTimestamp).UnixNano()]
	return i, ok
}

// sameDomain reports whether two domains describe the same axis: same type,
// length and labels in the same order.
func sameDomain(a, b Domain) bool {
	if a == b {
		return true
	}
	if a.Type() != b.Type() || a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Label(i) != b.Label(i) {
			return false
		}
	}
	return true
}

func describeDomain(d Domain) string {
	return string(d.Type()) + "[" + strconv.Itoa(d.Len()) + "]"
}
