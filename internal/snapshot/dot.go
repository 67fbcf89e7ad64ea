package snapshot

import (
	"sort"

	"github.com/emicklei/dot"
	"github.com/nandgate/hwdkg/internal/graphmodel"
)

// WriteDOT renders sg as Graphviz DOT source for terminal/editor preview.
// This is derived, write-only output — never read back into a SuperGraph —
// distinct from the out-of-scope HTML/JS visualizer.
func WriteDOT(sg *graphmodel.SuperGraph) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	ids := make([]string, 0, len(sg.SuperNodes))
	for id := range sg.SuperNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make(map[string]dot.Node, len(ids))
	for _, id := range ids {
		sn := sg.SuperNodes[id]
		n := g.Node(id).Label(string(sn.SuperClass))
		nodes[id] = n
	}

	keys := make([]string, 0, len(sg.SuperEdges))
	for k := range sg.SuperEdges {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		se := sg.SuperEdges[k]
		g.Edge(nodes[se.SrcSuperNode], nodes[se.DstSuperNode])
	}

	return g.String()
}
