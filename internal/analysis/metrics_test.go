package analysis

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func buildTimingGraph(t *testing.T) (*graphmodel.Graph, *graphmodel.SuperNode) {
	t.Helper()
	g := graphmodel.New()

	a := graphmodel.NewNode("N_a", graphmodel.ClassFlipFlop)
	a.Slack = floatPtr(-0.2)
	a.ArrivalTime = floatPtr(0.8)
	a.RequiredTime = floatPtr(0.6)
	a.Attributes["clock_period"] = 1.0

	b := graphmodel.NewNode("N_b", graphmodel.ClassFlipFlop)
	b.Slack = floatPtr(0.5)
	b.ArrivalTime = floatPtr(0.3)
	b.RequiredTime = floatPtr(0.8)

	g.AddNode(a)
	g.AddNode(b)

	sn := graphmodel.NewSuperNode("SN_1", graphmodel.SuperClassAtomic)
	sn.MemberNodes["N_a"] = true
	sn.MemberNodes["N_b"] = true

	return g, sn
}

func TestComputeNodeMetricsMinAndCriticalRatio(t *testing.T) {
	g, sn := buildTimingGraph(t)
	m := ComputeNodeMetrics(g, sn, Options{})

	require.NotNil(t, m.MinSlack)
	assert.InDelta(t, -0.2, *m.MinSlack, 1e-9)
	assert.InDelta(t, 0.5, m.CriticalNodeRatio, 1e-9, "1 of 2 nodes has negative slack")
	require.NotNil(t, m.MaxArrivalTime)
	assert.InDelta(t, 0.8, *m.MaxArrivalTime, 1e-9)
	require.NotNil(t, m.MinRequiredTime)
	assert.InDelta(t, 0.6, *m.MinRequiredTime, 1e-9)
}

func TestComputeNodeMetricsEmptySampleReturnsZeroBundle(t *testing.T) {
	g := graphmodel.New()
	sn := graphmodel.NewSuperNode("SN_empty", graphmodel.SuperClassAtomic)
	m := ComputeNodeMetrics(g, sn, Options{})
	assert.Nil(t, m.MinSlack)
	assert.Equal(t, 0, m.SampleSize)
}

func TestComputeEdgeMetricsMaxDelayAndHistogram(t *testing.T) {
	g := graphmodel.New()
	a := graphmodel.NewNode("N_a", graphmodel.ClassLUT)
	b := graphmodel.NewNode("N_b", graphmodel.ClassLUT)
	g.AddNode(a)
	g.AddNode(b)

	e1 := graphmodel.NewEdge("E_1", "N_a", "N_b", graphmodel.RelationData, graphmodel.FlowCombinational)
	e1.Delay = floatPtr(0.1)
	e2 := graphmodel.NewEdge("E_2", "N_a", "N_b", graphmodel.RelationData, graphmodel.FlowSeqLaunch)
	e2.Delay = floatPtr(0.4)
	require.NoError(t, g.AddEdge(e1))
	require.NoError(t, g.AddEdge(e2))

	se := graphmodel.NewSuperEdge("SE_1", "SN_a", "SN_b")
	se.MemberEdges["E_1"] = true
	se.MemberEdges["E_2"] = true

	m := ComputeEdgeMetrics(g, se)
	require.NotNil(t, m.MaxDelay)
	assert.InDelta(t, 0.4, *m.MaxDelay, 1e-9)
	assert.Equal(t, 1, m.FlowTypeHistogram[graphmodel.FlowCombinational])
	assert.Equal(t, 1, m.FlowTypeHistogram[graphmodel.FlowSeqLaunch])
}

func TestAggregateNeverTouchesBaseEntities(t *testing.T) {
	g, sn := buildTimingGraph(t)
	sg := graphmodel.NewSuperGraph("Connectivity", "Design")
	sg.SuperNodes["SN_1"] = sn

	before := *g.Nodes["N_a"].Slack
	Aggregate(g, sg, Options{})
	after := *g.Nodes["N_a"].Slack

	assert.Equal(t, before, after)
	_, ok := sg.SuperNodes["SN_1"].Analysis[graphmodel.AnalysisKindTiming]
	assert.True(t, ok)
}

func TestAggregateReplacesPriorBundleAtomically(t *testing.T) {
	g, sn := buildTimingGraph(t)
	sg := graphmodel.NewSuperGraph("Connectivity", "Design")
	sg.SuperNodes["SN_1"] = sn
	sn.Analysis[graphmodel.AnalysisKindTiming] = "stale"

	Aggregate(g, sg, Options{})

	bundle := sg.SuperNodes["SN_1"].Analysis[graphmodel.AnalysisKindTiming]
	_, ok := bundle.(TimingNodeMetrics)
	assert.True(t, ok, "prior bundle must be fully replaced, not merged")
}
