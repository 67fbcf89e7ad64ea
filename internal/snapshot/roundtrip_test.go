package snapshot

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleGraph(t *testing.T) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New()

	clk := "sys_clk"
	slack := 1.5
	a := graphmodel.NewNode("N_a", graphmodel.ClassFlipFlop)
	a.HierPath = "cpu/reg0"
	a.LocalName = "reg0"
	a.ClockDomain = &clk
	a.Slack = &slack
	a.Provenance = []graphmodel.ProvenanceRef{{OriginFile: "top.v", OriginLine: 10, Stage: "rtl", Confidence: "exact"}}

	b := graphmodel.NewNode("N_b", graphmodel.ClassLUT)
	b.HierPath = "cpu/lut0"
	b.LocalName = "lut0"

	g.AddNode(a)
	g.AddNode(b)

	e := graphmodel.NewEdge("E_ab", "N_a", "N_b", graphmodel.RelationData, graphmodel.FlowCombinational)
	e.BitRange = &graphmodel.BitRange{MSB: 3, LSB: 0}
	require.NoError(t, g.AddEdge(e))

	return g
}

func TestDocumentRoundTripPreservesNodesAndEdges(t *testing.T) {
	g := buildSampleGraph(t)
	version := Version{RTLHash: "abc123", PolicyVersions: map[string]string{"Connectivity": "v1"}}

	doc := BuildDocument(g, version, nil)
	rebuilt := BuildGraph(doc.DKG)

	require.Len(t, rebuilt.Nodes, 2)
	require.Len(t, rebuilt.Edges, 1)

	a := rebuilt.Nodes["N_a"]
	require.NotNil(t, a.ClockDomain)
	assert.Equal(t, "sys_clk", *a.ClockDomain)
	require.Len(t, a.Provenance, 1)
	assert.Equal(t, "top.v", a.Provenance[0].OriginFile)

	e := rebuilt.Edges["E_ab"]
	require.NotNil(t, e.BitRange)
	assert.Equal(t, 3, e.BitRange.MSB)
	assert.Equal(t, 0, e.BitRange.LSB)
}

func TestSuperGraphRoundTripPreservesNodeToSuperTotalMap(t *testing.T) {
	sg := graphmodel.NewSuperGraph("Connectivity", "Design")
	sn := graphmodel.NewSuperNode("SN_1", graphmodel.SuperClassAtomic)
	sn.MemberNodes["N_a"] = true
	sg.SuperNodes["SN_1"] = sn
	sg.NodeToSuper["N_a"] = "SN_1"

	se := graphmodel.NewSuperEdge("SE_1", "SN_1", "SN_2")
	se.RelationTypes[graphmodel.RelationData] = true
	se.FlowTypes[graphmodel.FlowCombinational] = true
	sg.SuperEdges[graphmodel.SuperEdgeKey("SN_1", "SN_2")] = se

	doc := superGraphToDoc(sg)
	rebuilt := BuildSuperGraph(doc)

	assert.Equal(t, "SN_1", rebuilt.NodeToSuper["N_a"])
	key := graphmodel.SuperEdgeKey("SN_1", "SN_2")
	require.Contains(t, rebuilt.SuperEdges, key)
	assert.Contains(t, rebuilt.SuperEdges[key].RelationTypes, graphmodel.RelationData)
}

func TestSuperEdgeKeyFormatUsesPipeSeparator(t *testing.T) {
	assert.Equal(t, "SN_a|SN_b", graphmodel.SuperEdgeKey("SN_a", "SN_b"))
}
