package view

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain constructs FF -> LUT1 -> LUT2, the spec's worked scenario.
func buildChain(t *testing.T) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New()

	ff := graphmodel.NewNode("N_FlipFlop_aaa", graphmodel.ClassFlipFlop)
	ff.LocalName = "pc_reg"
	ff.HierPath = "cpu/pc_reg"
	lut1 := graphmodel.NewNode("N_LUT_bbb", graphmodel.ClassLUT)
	lut1.LocalName = "lut1"
	lut1.HierPath = "cpu/lut1"
	lut2 := graphmodel.NewNode("N_LUT_ccc", graphmodel.ClassLUT)
	lut2.LocalName = "lut2"
	lut2.HierPath = "cpu/lut2"

	g.AddNode(ff)
	g.AddNode(lut1)
	g.AddNode(lut2)

	e1 := graphmodel.NewEdge("E_1", ff.ID, lut1.ID, graphmodel.RelationData, graphmodel.FlowSeqLaunch)
	e2 := graphmodel.NewEdge("E_2", lut1.ID, lut2.ID, graphmodel.RelationData, graphmodel.FlowCombinational)
	require.NoError(t, g.AddEdge(e1))
	require.NoError(t, g.AddEdge(e2))

	return g
}

func TestBuildFFLutChainYieldsAtomicAndCombinationalCloud(t *testing.T) {
	g := buildChain(t)
	table := DefaultPolicyTable()

	sg, err := Build(g, ViewConnectivity, ContextDesign, table, "v1")
	require.NoError(t, err)

	require.Len(t, sg.SuperNodes, 2, "expect exactly 2 super-nodes: Atomic(FF), CombinationalCloud(LUT1,LUT2)")

	var atomic, cloud *graphmodel.SuperNode
	for _, sn := range sg.SuperNodes {
		switch sn.SuperClass {
		case graphmodel.SuperClassAtomic:
			atomic = sn
		case graphmodel.SuperClassCombinationalCloud:
			cloud = sn
		}
	}
	require.NotNil(t, atomic, "FF must be Promoted into an Atomic super-node")
	require.NotNil(t, cloud, "LUTs must Merge into a CombinationalCloud super-node")

	assert.Len(t, atomic.MemberNodes, 1)
	assert.Len(t, cloud.MemberNodes, 2)

	require.Len(t, sg.SuperEdges, 1, "expect exactly one super-edge from Atomic to CombinationalCloud")
	for _, se := range sg.SuperEdges {
		assert.Equal(t, atomic.ID, se.SrcSuperNode)
		assert.Equal(t, cloud.ID, se.DstSuperNode)
	}
}

func TestBuildIsDeterministicAcrossIndependentRuns(t *testing.T) {
	table := DefaultPolicyTable()

	g1 := buildChain(t)
	sg1, err := Build(g1, ViewConnectivity, ContextDesign, table, "v1")
	require.NoError(t, err)

	g2 := buildChain(t)
	sg2, err := Build(g2, ViewConnectivity, ContextDesign, table, "v1")
	require.NoError(t, err)

	ids1 := make([]string, 0, len(sg1.SuperNodes))
	for id := range sg1.SuperNodes {
		ids1 = append(ids1, id)
	}
	ids2 := make([]string, 0, len(sg2.SuperNodes))
	for id := range sg2.SuperNodes {
		ids2 = append(ids2, id)
	}
	assert.ElementsMatch(t, ids1, ids2, "super-node ids must be content-addressed and reproducible")

	seIDs1 := make([]string, 0, len(sg1.SuperEdges))
	for _, se := range sg1.SuperEdges {
		seIDs1 = append(seIDs1, se.ID)
	}
	seIDs2 := make([]string, 0, len(sg2.SuperEdges))
	for _, se := range sg2.SuperEdges {
		seIDs2 = append(seIDs2, se.ID)
	}
	assert.ElementsMatch(t, seIDs1, seIDs2)
}

func TestBuildNodeToSuperIsTotal(t *testing.T) {
	g := buildChain(t)
	sg, err := Build(g, ViewStructural, ContextDesign, DefaultPolicyTable(), "v1")
	require.NoError(t, err)

	for id := range g.Nodes {
		sn, ok := sg.NodeToSuper[id]
		assert.True(t, ok, "every base node must map to a super-node")
		assert.Contains(t, sg.SuperNodes, sn)
	}
}

func TestBuildTestbenchNodeForcedEliminateInDesignContext(t *testing.T) {
	g := graphmodel.New()
	tb := graphmodel.NewNode("N_ModuleInstance_tb", graphmodel.ClassModuleInstance)
	tb.LocalName = "tb_driver"
	tb.HierPath = "testbench/tb_driver"
	g.AddNode(tb)

	sg, err := Build(g, ViewStructural, ContextDesign, DefaultPolicyTable(), "v1")
	require.NoError(t, err)

	snID := sg.NodeToSuper[tb.ID]
	sn := sg.SuperNodes[snID]
	assert.Equal(t, graphmodel.SuperClassEliminated, sn.SuperClass, "tb_ prefixed nodes must be forced Eliminate in Design context")
}

func TestBuildClockGenPromotedInSimulationContext(t *testing.T) {
	g := graphmodel.New()
	clkGen := graphmodel.NewNode("N_RTLBlock_clkgen", graphmodel.ClassRTLBlock)
	clkGen.LocalName = "clk_gen_100mhz"
	clkGen.HierPath = "tb/clk_gen_100mhz"
	g.AddNode(clkGen)

	sg, err := Build(g, ViewStructural, ContextSimulation, DefaultPolicyTable(), "v1")
	require.NoError(t, err)

	snID := sg.NodeToSuper[clkGen.ID]
	sn := sg.SuperNodes[snID]
	assert.Equal(t, graphmodel.SuperClassAtomic, sn.SuperClass, "clk_gen nodes must be lifted from Merge to Promote in Simulation context")
}

func TestBuildDisjointMergeGroupsStaySeparate(t *testing.T) {
	g := graphmodel.New()
	a := graphmodel.NewNode("N_LUT_a", graphmodel.ClassLUT)
	b := graphmodel.NewNode("N_LUT_b", graphmodel.ClassLUT)
	c := graphmodel.NewNode("N_LUT_c", graphmodel.ClassLUT)
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)
	// a-b connected, c isolated: two separate combinational clouds expected.
	e := graphmodel.NewEdge("E_ab", a.ID, b.ID, graphmodel.RelationData, graphmodel.FlowCombinational)
	require.NoError(t, g.AddEdge(e))

	sg, err := Build(g, ViewConnectivity, ContextDesign, DefaultPolicyTable(), "v1")
	require.NoError(t, err)

	assert.NotEqual(t, sg.NodeToSuper[a.ID], sg.NodeToSuper[c.ID], "disconnected merge-eligible nodes must not collapse into one super-node")
	assert.Equal(t, sg.NodeToSuper[a.ID], sg.NodeToSuper[b.ID])
}
