package snapshot

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
)

func TestWriteDOTIncludesSuperNodeLabels(t *testing.T) {
	sg := graphmodel.NewSuperGraph("Connectivity", "Design")
	sn1 := graphmodel.NewSuperNode("SN_1", graphmodel.SuperClassAtomic)
	sn2 := graphmodel.NewSuperNode("SN_2", graphmodel.SuperClassCombinationalCloud)
	sg.SuperNodes["SN_1"] = sn1
	sg.SuperNodes["SN_2"] = sn2
	sg.SuperEdges[graphmodel.SuperEdgeKey("SN_1", "SN_2")] = graphmodel.NewSuperEdge("SE_1", "SN_1", "SN_2")

	out := WriteDOT(sg)
	assert.Contains(t, out, "SN_1")
	assert.Contains(t, out, "SN_2")
	assert.Contains(t, out, "digraph")
}
