package filter

import (
	"encoding/json"
	"testing"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func record() *v1.Record {
	return &v1.Record{
		Test:     "cold-loadtime",
		Site:     "google",
		Platform: "fenix-g5",
		Browser:  "fenix",
		Meta:     map[string]string{"suite": "raptor-tp6m"},
	}
}

func TestPredicates_Match(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{name: "eq single value", pred: In("test", "cold-loadtime"), want: true},
		{name: "eq one of", pred: In("platform", "fenix-p2-aarch64", "fenix-g5"), want: true},
		{name: "eq miss", pred: In("site", "amazon"), want: false},
		{name: "eq on metadata", pred: In("suite", "raptor-tp6m"), want: true},
		{name: "eq on unset attribute", pred: In("framework", ""), want: false},
		{name: "and all match", pred: And{In("test", "cold-loadtime"), In("browser", "fenix")}, want: true},
		{name: "and one misses", pred: And{In("test", "cold-loadtime"), In("browser", "geckoview")}, want: false},
		{name: "empty and matches everything", pred: And{}, want: true},
		{name: "or one matches", pred: Or{In("site", "amazon"), In("site", "google")}, want: true},
		{name: "empty or matches nothing", pred: Or{}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.pred.Match(record()))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Predicate
		wantErr bool
	}{
		{
			name:  "eq list",
			input: `{"eq": {"test": ["cold-loadtime", "warm-loadtime"]}}`,
			want:  Eq{Field: "test", Values: []string{"cold-loadtime", "warm-loadtime"}},
		},
		{
			name:  "eq scalar",
			input: `{"eq": {"browser": "fenix"}}`,
			want:  Eq{Field: "browser", Values: []string{"fenix"}},
		},
		{
			name:  "eq with several fields is a sorted conjunction",
			input: `{"eq": {"test": "a", "platform": "b"}}`,
			want:  And{Eq{Field: "platform", Values: []string{"b"}}, Eq{Field: "test", Values: []string{"a"}}},
		},
		{
			name:  "numeric values become strings",
			input: `{"eq": {"framework": 10}}`,
			want:  Eq{Field: "framework", Values: []string{"10"}},
		},
		{
			name:  "nested or of and",
			input: `{"or": [{"and": [{"eq": {"test": "a"}}]}, {"eq": {"site": "s"}}]}`,
			want: Or{
				And{Eq{Field: "test", Values: []string{"a"}}},
				Eq{Field: "site", Values: []string{"s"}},
			},
		},
		{name: "unknown operator", input: `{"not": {"eq": {"test": "a"}}}`, wantErr: true},
		{name: "two operators", input: `{"eq": {"test": "a"}, "or": []}`, wantErr: true},
		{name: "eq not an object", input: `{"eq": ["test"]}`, wantErr: true},
		{name: "empty eq", input: `{"eq": {}}`, wantErr: true},
		{name: "and not a list", input: `{"and": {"eq": {"test": "a"}}}`, wantErr: true},
		{name: "nested value object", input: `{"eq": {"test": {"x": 1}}}`, wantErr: true},
		{name: "not an object", input: `"test"`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var raw interface{}
			require.NoError(t, json.Unmarshal([]byte(tc.input), &raw))

			got, err := Parse(raw)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrInvalidExpression)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestString_RendersExpression(t *testing.T) {
	p := Or{And{In("browser", "fenix"), In("test", "cold-loadtime")}}
	require.JSONEq(t,
		`{"or":[{"and":[{"eq":{"browser":["fenix"]}},{"eq":{"test":["cold-loadtime"]}}]}]}`,
		String(p),
	)
	require.Equal(t, "null", String(nil))
}

func TestExpr_YAML(t *testing.T) {
	doc := `
filter:
  and:
    - eq: {platform: [fenix-g5, fenix-p2-aarch64]}
    - eq: {framework: 10}
empty:
`
	var out struct {
		Filter Expr `yaml:"filter"`
		Empty  Expr `yaml:"empty"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(doc), &out))
	require.True(t, out.Filter.IsSet())
	require.False(t, out.Empty.IsSet())

	rec := record()
	rec.Meta["framework"] = "10"
	require.True(t, out.Filter.Match(rec))

	rec.Platform = "windows10-64"
	require.False(t, out.Filter.Match(rec))
}

func TestExpr_YAMLRejectsBadExpression(t *testing.T) {
	var out struct {
		Filter Expr `yaml:"filter"`
	}
	err := yaml.Unmarshal([]byte("filter:\n  xor: []\n"), &out)
	require.ErrorIs(t, err, ErrInvalidExpression)
}

func TestExpr_JSONRoundTrip(t *testing.T) {
	in := `{"or":[{"eq":{"site":["google","amazon"]}}]}`

	var e Expr
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	out, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))

	var empty Expr
	require.NoError(t, json.Unmarshal([]byte("null"), &empty))
	require.False(t, empty.IsSet())
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	require.Equal(t, "null", string(out))
}
