package snapshot

import "github.com/nandgate/hwdkg/internal/graphmodel"

// BuildGraph reconstructs a base Graph from a DKGDoc, re-interning typed
// enumerations (entity_class, relation_type, flow_type) and adjacency sets.
func BuildGraph(doc DKGDoc) *graphmodel.Graph {
	g := graphmodel.New()

	for id, nd := range doc.Nodes {
		n := graphmodel.NewNode(id, graphmodel.EntityClass(nd.EntityClass))
		n.HierPath = nd.HierPath
		n.LocalName = nd.LocalName
		n.CanonicalName = nd.CanonicalName
		if nd.Params != nil {
			n.Params = nd.Params
		}
		if nd.Attributes != nil {
			n.Attributes = nd.Attributes
		}
		n.ClockDomain = nd.ClockDomain
		n.ArrivalTime = nd.ArrivalTime
		n.RequiredTime = nd.RequiredTime
		n.Slack = nd.Slack
		n.InEdges = nd.InEdges
		n.OutEdges = nd.OutEdges
		n.Provenance = docToProv(nd.Provenance)
		n.PrimaryProv = nd.PrimaryProv
		g.AddNode(n)
	}

	for id, ed := range doc.Edges {
		e := graphmodel.NewEdge(id, ed.SrcNode, ed.DstNode, graphmodel.RelationType(ed.Relation), graphmodel.FlowType(ed.Flow))
		e.SignalName = ed.SignalName
		if ed.BitRange != nil {
			e.BitRange = &graphmodel.BitRange{MSB: ed.BitRange[0], LSB: ed.BitRange[1]}
		}
		e.Delay = ed.Delay
		e.ArrivalTime = ed.ArrivalTime
		e.RequiredTime = ed.RequiredTime
		e.Slack = ed.Slack
		if ed.Params != nil {
			e.Params = ed.Params
		}
		if ed.Attributes != nil {
			e.Attributes = ed.Attributes
		}
		e.Provenance = docToProv(ed.Provenance)
		e.PrimaryProv = ed.PrimaryProv
		// Edges reference nodes already present in doc.Nodes; adjacency
		// lists were restored verbatim above, so insert directly into the
		// map rather than re-deriving via AddEdge (which would duplicate
		// the adjacency entries already loaded onto the nodes).
		g.Edges[id] = e
	}

	return g
}

// BuildSuperGraph reconstructs a SuperGraph from a SuperGraphDoc.
func BuildSuperGraph(doc SuperGraphDoc) *graphmodel.SuperGraph {
	sg := graphmodel.NewSuperGraph(doc.View, doc.Context)

	for id, snd := range doc.SuperNodes {
		sn := graphmodel.NewSuperNode(id, graphmodel.SuperClass(snd.SuperClass))
		for _, m := range snd.MemberNodes {
			sn.MemberNodes[m] = true
		}
		for _, m := range snd.MemberEdges {
			sn.MemberEdges[m] = true
		}
		if snd.Attributes != nil {
			sn.Attributes = snd.Attributes
		}
		sg.SuperNodes[id] = sn
	}

	for key, sed := range doc.SuperEdges {
		se := graphmodel.NewSuperEdge(sed.ID, sed.SrcSuperNode, sed.DstSuperNode)
		for _, m := range sed.MemberEdges {
			se.MemberEdges[m] = true
		}
		for _, m := range sed.MemberNodes {
			se.MemberNodes[m] = true
		}
		for _, r := range sed.RelationTypes {
			se.RelationTypes[graphmodel.RelationType(r)] = true
		}
		for _, f := range sed.FlowTypes {
			se.FlowTypes[graphmodel.FlowType(f)] = true
		}
		sg.SuperEdges[key] = se
	}

	for nodeID, snID := range doc.NodeToSuper {
		sg.NodeToSuper[nodeID] = snID
	}

	return sg
}
