package cube

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
)

// Kind identifies what a Cell holds.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindBool
	KindRecords
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindRecords:
		return "records"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is the value stored at one cube address.
//
// Absence is a distinct kind, never a zero number: reducers skip absent cells, so
// "excluded" and "zero" cannot be conflated. The zero Cell is absent.
type Cell struct {
	kind    Kind
	num     float64
	flag    bool
	records []*v1.Record
}

// Absent returns the "no value at this address" cell.
func Absent() Cell {
	return Cell{}
}

// Number returns a numeric cell. NaN is normalized to Absent.
func Number(v float64) Cell {
	if math.IsNaN(v) {
		return Cell{}
	}
	return Cell{kind: KindNumber, num: v}
}

// Bool returns a boolean cell.
func Bool(b bool) Cell {
	return Cell{kind: KindBool, flag: b}
}

// Records returns a cell holding a group of raw records. An empty group is present
// (the address exists, nothing was observed there) and is not the same as Absent.
func Records(recs []*v1.Record) Cell {
	return Cell{kind: KindRecords, records: recs}
}

// Kind reports what the cell holds.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool {
	return c.kind == KindAbsent
}

// Float returns the numeric value and whether the cell is a number.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// Flag returns the boolean value and whether the cell is a boolean.
func (c Cell) Flag() (bool, bool) {
	if c.kind != KindBool {
		return false, false
	}
	return c.flag, true
}

// Records returns the record group, nil for non-record cells.
func (c Cell) Records() []*v1.Record {
	if c.kind != KindRecords {
		return nil
	}
	return c.records
}

// Len is the number of records in a record cell, 0 otherwise.
func (c Cell) Len() int {
	return len(c.Records())
}

// Exists reports whether the cell carries an observation: a number, a boolean, or
// a non-empty record group.
func (c Cell) Exists() bool {
	switch c.kind {
	case KindNumber, KindBool:
		return true
	case KindRecords:
		return len(c.records) > 0
	default:
		return false
	}
}

// Equal compares kinds and scalar payloads. Record cells compare by identity of
// their members.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNumber:
		return c.num == o.num
	case KindBool:
		return c.flag == o.flag
	case KindRecords:
		if len(c.records) != len(o.records) {
			return false
		}
		for i := range c.records {
			if c.records[i] != o.records[i] {
				return false
			}
		}
	}
	return true
}

func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.flag)
	case KindRecords:
		return fmt.Sprintf("records(%d)", len(c.records))
	default:
		return "absent"
	}
}

// MarshalJSON renders absent cells as null and record cells as their size.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	case KindBool:
		return json.Marshal(c.flag)
	case KindRecords:
		return json.Marshal(len(c.records))
	default:
		return []byte("null"), nil
	}
}
