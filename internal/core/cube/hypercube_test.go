package cube

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleHyperCube(t *testing.T) *HyperCube {
	t.Helper()
	test := setEdge(t, "test", "t1", "t2")
	platform := setEdge(t, "platform", "p1", "p2")
	date := dateEdge(t, "pushDate", days(1, 3))

	result, err := New([]Edge{test, platform, date}, func(pos []int) Cell {
		if pos[2] == 2 {
			return Absent()
		}
		return Number(float64(100*pos[0] + 10*pos[1] + pos[2]))
	})
	require.NoError(t, err)
	count, err := New([]Edge{test, platform}, func(pos []int) Cell { return Number(float64(pos[0] + pos[1])) })
	require.NoError(t, err)

	h, err := NewHyperCube(map[string]*Cube{
		"result": result,
		"count":  count,
		"total":  Constant(Number(3)),
	})
	require.NoError(t, err)
	return h
}

func TestHyperCube_WhereAndAlong(t *testing.T) {
	h := sampleHyperCube(t)
	require.Equal(t, []string{"count", "result", "total"}, h.Names())

	view, err := h.Where(map[string]string{"test": "t2"})
	require.NoError(t, err)

	platforms, err := view.Along("platform")
	require.NoError(t, err)
	require.Len(t, platforms, 2)
	require.Equal(t, "p2", platforms[1].Label)

	p2 := platforms[1].View
	count, err := p2.Get("count")
	require.NoError(t, err)
	require.Equal(t, Number(2), count)
	require.Equal(t, Number(3), p2.Value("total"))

	_, err = p2.Get("result")
	require.ErrorIs(t, err, ErrUnboundEdges)

	series, err := p2.Along("pushDate")
	require.NoError(t, err)
	var got []Cell
	for _, pos := range series {
		got = append(got, pos.View.Value("result"))
	}
	require.Equal(t, []Cell{Number(110), Number(111), Absent()}, got)
	require.Equal(t, "2024-03-02", series[1].Label)
}

func TestHyperCube_WhereIsAView(t *testing.T) {
	h := sampleHyperCube(t)

	view, err := h.Where(map[string]string{"test": "t1", "platform": "p2", "pushDate": "2024-03-02"})
	require.NoError(t, err)
	require.Equal(t, Number(11), view.Value("result"))

	// the original bundle is untouched
	c, ok := h.Cube("result")
	require.True(t, ok)
	require.Equal(t, []string{"test", "platform", "pushDate"}, c.EdgeNames())
}

func TestHyperCube_Errors(t *testing.T) {
	h := sampleHyperCube(t)

	_, err := h.Where(map[string]string{"site": "a"})
	require.ErrorIs(t, err, ErrUnknownEdge)

	_, err = h.Where(map[string]string{"test": "t9"})
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = h.Along("site")
	require.ErrorIs(t, err, ErrUnknownEdge)

	_, err = h.Get("missing")
	require.ErrorIs(t, err, ErrUnknownCube)
	require.True(t, h.Value("missing").IsAbsent())

	a := Constant(Number(1))
	b := grid(t, []Edge{setEdge(t, "site", "a")}, 1)
	c := grid(t, []Edge{setEdge(t, "site", "b")}, 1)
	_, err = NewHyperCube(map[string]*Cube{"a": a, "b": b, "c": c})
	require.ErrorIs(t, err, ErrEdgeMismatch)
}
