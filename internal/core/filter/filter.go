// Package filter implements the boolean record filters used to select records from
// the record source and to bucket records into set-domain partitions.
//
// The set of predicate kinds is closed: Eq (equals one of), And, Or. Expressions
// are written in catalog files and requests as
//
//	{"eq": {"test": ["cold-loadtime"], "platform": "fenix-g5"}}
//	{"and": [<expr>, <expr>]}
//	{"or": [<expr>, <expr>]}
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
)

// ErrInvalidExpression marks malformed filter expressions.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Predicate matches records.
type Predicate interface {
	Match(rec *v1.Record) bool

	// Expression returns the JSON-compatible expression form of the predicate.
	Expression() interface{}
}

// Eq matches records whose Field equals one of Values.
// A record that does not carry Field never matches.
type Eq struct {
	Field  string
	Values []string
}

// Match implements Predicate.
func (e Eq) Match(rec *v1.Record) bool {
	got, ok := rec.Attr(e.Field)
	if !ok {
		return false
	}
	for _, v := range e.Values {
		if v == got {
			return true
		}
	}
	return false
}

// Expression implements Predicate.
func (e Eq) Expression() interface{} {
	values := make([]interface{}, len(e.Values))
	for i, v := range e.Values {
		values[i] = v
	}
	return map[string]interface{}{"eq": map[string]interface{}{e.Field: values}}
}

// And matches when every term matches. The empty conjunction matches everything.
type And []Predicate

// Match implements Predicate.
func (a And) Match(rec *v1.Record) bool {
	for _, p := range a {
		if !p.Match(rec) {
			return false
		}
	}
	return true
}

// Expression implements Predicate.
func (a And) Expression() interface{} {
	return map[string]interface{}{"and": expressions(a)}
}

// Or matches when any term matches. The empty disjunction matches nothing.
type Or []Predicate

// Match implements Predicate.
func (o Or) Match(rec *v1.Record) bool {
	for _, p := range o {
		if p.Match(rec) {
			return true
		}
	}
	return false
}

// Expression implements Predicate.
func (o Or) Expression() interface{} {
	return map[string]interface{}{"or": expressions(o)}
}

func expressions(terms []Predicate) []interface{} {
	out := make([]interface{}, len(terms))
	for i, t := range terms {
		out[i] = t.Expression()
	}
	return out
}

// In is shorthand for Eq{Field: field, Values: values}.
func In(field string, values ...string) Eq {
	return Eq{Field: field, Values: values}
}

// All returns the predicate matching every record.
func All() Predicate {
	return And{}
}

// String renders p as its JSON expression. Used for logs and error diagnostics.
func String(p Predicate) string {
	if p == nil {
		return "null"
	}
	data, err := json.Marshal(p.Expression())
	if err != nil {
		return fmt.Sprintf("%v", p.Expression())
	}
	return string(data)
}

// Parse builds a Predicate from a decoded JSON/YAML expression.
func Parse(raw interface{}) (Predicate, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, invalidf("expected an object, got %T", raw)
	}
	if len(m) != 1 {
		return nil, invalidf("expected exactly one operator, got %d", len(m))
	}

	for op, arg := range m {
		switch op {
		case "eq":
			return parseEq(arg)
		case "and":
			terms, err := parseTerms(op, arg)
			if err != nil {
				return nil, err
			}
			return And(terms), nil
		case "or":
			terms, err := parseTerms(op, arg)
			if err != nil {
				return nil, err
			}
			return Or(terms), nil
		default:
			return nil, invalidf("unsupported operator %q", op)
		}
	}
	return nil, invalidf("empty expression")
}

func parseEq(arg interface{}) (Predicate, error) {
	fields, ok := arg.(map[string]interface{})
	if !ok {
		return nil, invalidf("eq: expected an object of field values, got %T", arg)
	}
	if len(fields) == 0 {
		return nil, invalidf("eq: no fields")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	terms := make(And, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, invalidf("eq: empty field name")
		}
		values, err := parseValues(fields[name])
		if err != nil {
			return nil, fmt.Errorf("eq %q: %w", name, err)
		}
		terms = append(terms, Eq{Field: name, Values: values})
	}

	if len(terms) == 1 {
		return terms[0], nil
	}
	return terms, nil
}

func parseValues(arg interface{}) ([]string, error) {
	switch v := arg.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalar(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool, int, int64, float64:
		return fmt.Sprint(val), nil
	default:
		return "", invalidf("unsupported value type %T", v)
	}
}

func parseTerms(op string, arg interface{}) ([]Predicate, error) {
	list, ok := arg.([]interface{})
	if !ok {
		return nil, invalidf("%s: expected a list, got %T", op, arg)
	}
	terms := make([]Predicate, 0, len(list))
	for i, item := range list {
		p, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", op, i, err)
		}
		terms = append(terms, p)
	}
	return terms, nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpression, fmt.Sprintf(format, args...))
}
