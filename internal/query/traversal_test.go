package query

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChainGraph(t *testing.T) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New()
	a := graphmodel.NewNode("N_a", graphmodel.ClassFlipFlop)
	b := graphmodel.NewNode("N_b", graphmodel.ClassLUT)
	c := graphmodel.NewNode("N_c", graphmodel.ClassLUT)
	d := graphmodel.NewNode("N_d", graphmodel.ClassFlipFlop)
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)
	g.AddNode(d)

	delay1, delay2, delay3 := 0.1, 5.0, 0.2
	eAB := graphmodel.NewEdge("E_ab", "N_a", "N_b", graphmodel.RelationData, graphmodel.FlowCombinational)
	eAB.Delay = &delay1
	eBD := graphmodel.NewEdge("E_bd", "N_b", "N_d", graphmodel.RelationData, graphmodel.FlowCombinational)
	eBD.Delay = &delay2
	eAC := graphmodel.NewEdge("E_ac", "N_a", "N_c", graphmodel.RelationData, graphmodel.FlowCombinational)
	eAC.Delay = &delay3
	eCD := graphmodel.NewEdge("E_cd", "N_c", "N_d", graphmodel.RelationData, graphmodel.FlowCombinational)
	eCD.Delay = &delay3

	require.NoError(t, g.AddEdge(eAB))
	require.NoError(t, g.AddEdge(eBD))
	require.NoError(t, g.AddEdge(eAC))
	require.NoError(t, g.AddEdge(eCD))

	return g
}

func TestFindPathsEnumeratesBothRoutes(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	paths := idx.FindPaths("N_a", "N_d", PathOptions{MaxDepth: 5})
	require.Len(t, paths, 2)
}

func TestShortestPathHopsPicksMinimalHopCount(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	path := idx.ShortestPathHops("N_a", "N_d", PathOptions{})
	require.NotNil(t, path)
	assert.Len(t, path, 3, "both routes are 2 hops, path should include src+dst+1 intermediate")
}

func TestShortestPathByDelayPrefersLowerCostRoute(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	path, cost := idx.ShortestPathByDelay("N_a", "N_d", PathOptions{})
	require.NotNil(t, path)
	assert.Equal(t, []string{"N_a", "N_c", "N_d"}, path, "a->c->d totals 0.4 vs a->b->d totals 5.1")
	assert.InDelta(t, 0.4, cost, 1e-9)
}

func TestFanOutReachesAllDownstreamNodes(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	reached := idx.FanOut("N_a", PathOptions{})
	assert.Contains(t, reached, "N_b")
	assert.Contains(t, reached, "N_c")
	assert.Contains(t, reached, "N_d")
}

func TestFanInReachesAllUpstreamNodes(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	reached := idx.FanIn("N_d", PathOptions{})
	assert.Contains(t, reached, "N_a")
	assert.Contains(t, reached, "N_b")
	assert.Contains(t, reached, "N_c")
}

func TestCriticalNodesBySlackOrdersWorstFirst(t *testing.T) {
	g := buildChainGraph(t)
	s1, s2 := -2.0, 3.0
	g.Nodes["N_a"].Slack = &s1
	g.Nodes["N_d"].Slack = &s2
	idx := NewIndex(g)

	top := idx.CriticalNodesBySlack(1)
	require.Len(t, top, 1)
	assert.Equal(t, "N_a", top[0].ID)
}

func TestCriticalEdgesByDelayOrdersWorstFirst(t *testing.T) {
	g := buildChainGraph(t)
	idx := NewIndex(g)

	top := idx.CriticalEdgesByDelay(1)
	require.Len(t, top, 1)
	assert.Equal(t, "E_bd", top[0].ID, "E_bd has the largest delay (5.0)")
}
