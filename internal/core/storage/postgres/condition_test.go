package postgres

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/perfcube-lab/perfcube/internal/core/filter"
)

func TestCompileCondition(t *testing.T) {
	tests := []struct {
		name      string
		condition filter.Predicate
		where     string
		args      []interface{}
	}{
		{
			name:      "nil selects everything",
			condition: nil,
			where:     "TRUE",
		},
		{
			name:      "empty conjunction",
			condition: filter.All(),
			where:     "TRUE",
		},
		{
			name:      "empty disjunction",
			condition: filter.Or{},
			where:     "FALSE",
		},
		{
			name:      "eq without values",
			condition: filter.Eq{Field: "test"},
			where:     "FALSE",
		},
		{
			name:      "named column",
			condition: filter.In("platform", "fenix-g5", "linux64"),
			where:     "platform = ANY($1)",
			args:      []interface{}{pq.Array([]string{"fenix-g5", "linux64"})},
		},
		{
			name:      "browser excludes unset",
			condition: filter.In("browser", "fenix"),
			where:     "(browser <> '' AND browser = ANY($1))",
			args:      []interface{}{pq.Array([]string{"fenix"})},
		},
		{
			name:      "metadata key",
			condition: filter.In("revision", "abc"),
			where:     "(meta ->> $1) = ANY($2)",
			args:      []interface{}{"revision", pq.Array([]string{"abc"})},
		},
		{
			name: "nested terms",
			condition: filter.Or{
				filter.And{filter.In("test", "a"), filter.In("site", "x")},
				filter.In("test", "b"),
			},
			where: "((test = ANY($1)) AND (site = ANY($2))) OR (test = ANY($3))",
			args: []interface{}{
				pq.Array([]string{"a"}),
				pq.Array([]string{"x"}),
				pq.Array([]string{"b"}),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			where, args, err := compileCondition(tc.condition)
			require.NoError(t, err)
			require.Equal(t, tc.where, where)
			require.Equal(t, tc.args, args)
		})
	}
}
