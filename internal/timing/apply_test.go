package timing

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/fieldsource"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleGraph(t *testing.T) (*graphmodel.Graph, *graphmodel.Node, *graphmodel.Node, *graphmodel.Edge) {
	t.Helper()
	g := graphmodel.New()
	src := graphmodel.NewNode("N_FlipFlop_1", graphmodel.ClassFlipFlop)
	src.HierPath = "cpu/pc_reg[0]"
	src.CanonicalName = "cpu/pc_reg[0]"
	dst := graphmodel.NewNode("N_FlipFlop_2", graphmodel.ClassFlipFlop)
	dst.HierPath = "cpu/decode_inst[0]"
	dst.CanonicalName = "cpu/decode_inst[0]"
	g.AddNode(src)
	g.AddNode(dst)
	e := graphmodel.NewEdge("E_1", src.ID, dst.ID, graphmodel.RelationData, graphmodel.FlowSeqLaunch)
	require.NoError(t, g.AddEdge(e))
	return g, src, dst, e
}

func TestApplyWorstCaseSlackReduction(t *testing.T) {
	g, src, _, _ := buildSimpleGraph(t)
	u := fieldsource.NewUpdater()
	ing := NewIngestor(g, u, nil, "report.txt")

	worse := -0.5
	better := 2.0
	ing.Apply([]Path{
		{Startpoint: "cpu/pc_reg[0]", Endpoint: "cpu/decode_inst[0]", Clock: "sys_clk", PathType: PathTypeSetup, Slack: &better},
		{Startpoint: "cpu/pc_reg[0]", Endpoint: "cpu/decode_inst[0]", Clock: "sys_clk", PathType: PathTypeSetup, Slack: &worse},
	}, 1)

	require.NotNil(t, src.Slack)
	assert.InDelta(t, -0.5, *src.Slack, 1e-9, "slack must reduce to the minimum (worst) observed value")
	assert.Equal(t, "sys_clk", *src.ClockDomain)

	slacks, ok := src.Attributes["timing_slacks"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, slacks, 2, "every path observation must be accumulated, not just the worst")
}

func TestApplyClockDomainFirstObservedWins(t *testing.T) {
	g, src, _, _ := buildSimpleGraph(t)
	u := fieldsource.NewUpdater()
	ing := NewIngestor(g, u, nil, "report.txt")

	ing.Apply([]Path{{Startpoint: "cpu/pc_reg[0]", Endpoint: "cpu/decode_inst[0]", Clock: "sys_clk"}}, 1)
	ing.Apply([]Path{{Startpoint: "cpu/pc_reg[0]", Endpoint: "cpu/decode_inst[0]", Clock: "other_clk"}}, 1)

	require.NotNil(t, src.ClockDomain)
	assert.Equal(t, "sys_clk", *src.ClockDomain, "first-observed clock domain must not be overwritten by a later path")
}

func TestApplyEdgeDelayFromStages(t *testing.T) {
	g, _, _, e := buildSimpleGraph(t)
	u := fieldsource.NewUpdater()
	ing := NewIngestor(g, u, nil, "report.txt")

	ing.Apply([]Path{{
		Startpoint: "cpu/pc_reg[0]",
		Endpoint:   "cpu/decode_inst[0]",
		Clock:      "sys_clk",
		Stages: []Stage{
			{Point: "cpu/pc_reg[0]/Q", IncrDelay: 0.15, CumulativeDelay: 0.15},
			{Point: "cpu/decode_inst[0]/D", IncrDelay: 0.08, CumulativeDelay: 0.23},
		},
	}}, 1)

	require.NotNil(t, e.Delay)
	assert.InDelta(t, 0.08, *e.Delay, 1e-9)
	require.NotNil(t, e.ArrivalTime)
	assert.InDelta(t, 0.23, *e.ArrivalTime, 1e-9)
}

func TestApplyMissingNodeWarnsWithoutPanicking(t *testing.T) {
	g := graphmodel.New()
	u := fieldsource.NewUpdater()
	ing := NewIngestor(g, u, nil, "report.txt")
	assert.NotPanics(t, func() {
		ing.Apply([]Path{{Startpoint: "nowhere", Endpoint: "nowhere_else"}}, 1)
	})
}
