package snapshot

import (
	"sort"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/identity"
)

// BuildDocument assembles the full textual Document for g plus zero or more
// named SuperGraphs, under the given version. Sets (InEdges/OutEdges,
// member ids, relation/flow spans) are always written as sorted arrays.
func BuildDocument(g *graphmodel.Graph, version Version, superGraphs map[string]*graphmodel.SuperGraph) Document {
	doc := Document{
		Version: version,
		DKG: DKGDoc{
			Nodes: make(map[string]NodeDoc, len(g.Nodes)),
			Edges: make(map[string]EdgeDoc, len(g.Edges)),
		},
	}

	for id, n := range g.Nodes {
		doc.DKG.Nodes[id] = nodeToDoc(n)
	}
	for id, e := range g.Edges {
		doc.DKG.Edges[id] = edgeToDoc(e)
	}

	if len(superGraphs) > 0 {
		doc.SuperGraph = make(map[string]SuperGraphDoc, len(superGraphs))
		for name, sg := range superGraphs {
			doc.SuperGraph[name] = superGraphToDoc(sg)
		}
	}

	return doc
}

func nodeToDoc(n *graphmodel.Node) NodeDoc {
	inEdges := identity.Sorted(n.InEdges)
	outEdges := identity.Sorted(n.OutEdges)
	return NodeDoc{
		ID:            n.ID,
		EntityClass:   string(n.EntityClass),
		HierPath:      n.HierPath,
		LocalName:     n.LocalName,
		CanonicalName: n.CanonicalName,
		Params:        n.Params,
		Attributes:    n.Attributes,
		ClockDomain:   n.ClockDomain,
		ArrivalTime:   n.ArrivalTime,
		RequiredTime:  n.RequiredTime,
		Slack:         n.Slack,
		InEdges:       inEdges,
		OutEdges:      outEdges,
		Provenance:    provToDoc(n.Provenance),
		PrimaryProv:   n.PrimaryProv,
	}
}

func edgeToDoc(e *graphmodel.Edge) EdgeDoc {
	var br *BitRangeDoc
	if e.BitRange != nil {
		br = &BitRangeDoc{e.BitRange.MSB, e.BitRange.LSB}
	}
	return EdgeDoc{
		ID:           e.ID,
		SrcNode:      e.SrcNode,
		DstNode:      e.DstNode,
		Relation:     string(e.Relation),
		Flow:         string(e.Flow),
		SignalName:   e.SignalName,
		BitRange:     br,
		Delay:        e.Delay,
		ArrivalTime:  e.ArrivalTime,
		RequiredTime: e.RequiredTime,
		Slack:        e.Slack,
		Params:       e.Params,
		Attributes:   e.Attributes,
		Provenance:   provToDoc(e.Provenance),
		PrimaryProv:  e.PrimaryProv,
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func superNodeToDoc(sn *graphmodel.SuperNode) SuperNodeDoc {
	return SuperNodeDoc{
		ID:          sn.ID,
		SuperClass:  string(sn.SuperClass),
		MemberNodes: sortedKeys(sn.MemberNodes),
		MemberEdges: sortedKeys(sn.MemberEdges),
		Attributes:  sn.Attributes,
	}
}

func superEdgeToDoc(se *graphmodel.SuperEdge) SuperEdgeDoc {
	rel := make([]string, 0, len(se.RelationTypes))
	for r := range se.RelationTypes {
		rel = append(rel, string(r))
	}
	sort.Strings(rel)
	flow := make([]string, 0, len(se.FlowTypes))
	for f := range se.FlowTypes {
		flow = append(flow, string(f))
	}
	sort.Strings(flow)

	return SuperEdgeDoc{
		ID:            se.ID,
		SrcSuperNode:  se.SrcSuperNode,
		DstSuperNode:  se.DstSuperNode,
		MemberEdges:   sortedKeys(se.MemberEdges),
		MemberNodes:   sortedKeys(se.MemberNodes),
		RelationTypes: rel,
		FlowTypes:     flow,
	}
}

func superGraphToDoc(sg *graphmodel.SuperGraph) SuperGraphDoc {
	doc := SuperGraphDoc{
		View:        sg.View,
		Context:     sg.Context,
		SuperNodes:  make(map[string]SuperNodeDoc, len(sg.SuperNodes)),
		SuperEdges:  make(map[string]SuperEdgeDoc, len(sg.SuperEdges)),
		NodeToSuper: sg.NodeToSuper,
	}
	for id, sn := range sg.SuperNodes {
		doc.SuperNodes[id] = superNodeToDoc(sn)
	}
	for key, se := range sg.SuperEdges {
		// key is already "{src}|{dst}" via graphmodel.SuperEdgeKey.
		doc.SuperEdges[key] = superEdgeToDoc(se)
	}
	return doc
}
