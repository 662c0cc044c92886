package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/perfcube-lab/perfcube/internal/core/filter"
)

// recordColumns maps filter fields to columns. Any other field is read from the
// meta JSON bag, mirroring v1.Record.Attr.
var recordColumns = map[string]string{
	"test":     "test",
	"site":     "site",
	"platform": "platform",
	"browser":  "browser",
}

// conditionBuilder compiles a predicate into a parameterized WHERE clause.
type conditionBuilder struct {
	args []interface{}
}

func (b *conditionBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// compileCondition returns the WHERE clause for p and its positional arguments.
func compileCondition(p filter.Predicate) (string, []interface{}, error) {
	b := &conditionBuilder{}
	where, err := b.compile(p)
	if err != nil {
		return "", nil, err
	}
	return where, b.args, nil
}

func (b *conditionBuilder) compile(p filter.Predicate) (string, error) {
	switch p := p.(type) {
	case nil:
		return "TRUE", nil
	case filter.Eq:
		if len(p.Values) == 0 {
			return "FALSE", nil
		}
		column, ok := recordColumns[p.Field]
		if ok {
			if column == "browser" {
				// an unset browser is stored as '' but does not match in memory
				return fmt.Sprintf("(browser <> '' AND browser = ANY(%s))", b.arg(pq.Array(p.Values))), nil
			}
			return fmt.Sprintf("%s = ANY(%s)", column, b.arg(pq.Array(p.Values))), nil
		}
		key := b.arg(p.Field)
		return fmt.Sprintf("(meta ->> %s) = ANY(%s)", key, b.arg(pq.Array(p.Values))), nil
	case filter.And:
		return b.join(p, " AND ", "TRUE")
	case filter.Or:
		return b.join(p, " OR ", "FALSE")
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func (b *conditionBuilder) join(terms []filter.Predicate, op, empty string) (string, error) {
	if len(terms) == 0 {
		return empty, nil
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		sql, err := b.compile(t)
		if err != nil {
			return "", err
		}
		parts[i] = "(" + sql + ")"
	}
	return strings.Join(parts, op), nil
}
