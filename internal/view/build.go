package view

import (
	"sort"
	"strings"

	"github.com/nandgate/hwdkg/internal/dkgerrors"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/identity"
)

// resolvePolicy applies the base policy table lookup, then the
// context-sensitive overrides of spec §4.7.
func resolvePolicy(table PolicyTable, ctx Context, v View, n *graphmodel.Node) NodePolicy {
	p := table.Lookup(ctx, v, n.EntityClass)

	if ctx == ContextDesign {
		if strings.HasPrefix(n.LocalName, "tb_") || strings.Contains(n.HierPath, "testbench") || strings.Contains(n.HierPath, "sim") {
			return NodePolicy{Action: ActionEliminate, MergeClass: graphmodel.SuperClassEliminated}
		}
	}

	if ctx == ContextSimulation && p.Action == ActionMerge {
		isInitialConstruct := false
		if v, ok := n.Attributes["initial_construct"].(bool); ok && v {
			isInitialConstruct = true
		}
		if strings.HasPrefix(n.LocalName, "clk_gen") || strings.HasPrefix(n.LocalName, "reset_gen") || isInitialConstruct {
			return NodePolicy{Action: ActionPromote}
		}
	}

	return p
}

// Build runs the three-phase PROMOTE/MERGE/ELIMINATE rewrite over g,
// producing a SuperGraph for (view, context) under table, stamped with
// policyVersion (spec §4.7).
func Build(g *graphmodel.Graph, v View, ctx Context, table PolicyTable, policyVersion string) (*graphmodel.SuperGraph, error) {
	sg := graphmodel.NewSuperGraph(string(v), string(ctx))

	policies := make(map[string]NodePolicy, len(g.Nodes))
	for id, n := range g.Nodes {
		policies[id] = resolvePolicy(table, ctx, v, n)
	}

	// Phase 1: Promote.
	for id, n := range g.Nodes {
		if policies[id].Action != ActionPromote {
			continue
		}
		snID := identity.SuperNodeID(string(v), string(graphmodel.SuperClassAtomic), policyVersion, []string{id})
		sn := graphmodel.NewSuperNode(snID, graphmodel.SuperClassAtomic)
		sn.MemberNodes[id] = true
		mergeNodeProvenance(sn, n)
		sg.SuperNodes[snID] = sn
		sg.NodeToSuper[id] = snID
	}

	// Phase 2: Merge, grouped by target merge class, connected components
	// via iterative DFS restricted to same-class Merge-action nodes.
	byClass := map[graphmodel.SuperClass][]string{}
	for id := range g.Nodes {
		if p := policies[id]; p.Action == ActionMerge {
			byClass[p.MergeClass] = append(byClass[p.MergeClass], id)
		}
	}
	for class, members := range byClass {
		eligible := make(map[string]bool, len(members))
		for _, id := range members {
			eligible[id] = true
		}
		for _, comp := range connectedComponents(g, eligible) {
			sorted := identity.Sorted(comp)
			snID := identity.SuperNodeID(string(v), string(class), policyVersion, sorted)
			sn := graphmodel.NewSuperNode(snID, class)
			for _, id := range sorted {
				sn.MemberNodes[id] = true
				mergeNodeProvenance(sn, g.Nodes[id])
				sg.NodeToSuper[id] = snID
			}
			sg.SuperNodes[snID] = sn
		}
	}

	// Phase 3: Eliminate — every still-unmapped node, regardless of its
	// resolved action (a Merge-action node with no eligible neighbors is
	// its own singleton component and was already handled in phase 2;
	// anything left here is Eliminate-resolved or table-default).
	for id, n := range g.Nodes {
		if _, mapped := sg.NodeToSuper[id]; mapped {
			continue
		}
		class := graphmodel.SuperClassEliminated
		if p := policies[id]; p.Action == ActionEliminate && p.MergeClass != "" {
			class = p.MergeClass
		}
		snID := identity.SuperNodeID(string(v), string(class), policyVersion, []string{id})
		sn := graphmodel.NewSuperNode(snID, class)
		sn.MemberNodes[id] = true
		mergeNodeProvenance(sn, n)
		sg.SuperNodes[snID] = sn
		sg.NodeToSuper[id] = snID
	}

	for id := range g.Nodes {
		if _, ok := sg.NodeToSuper[id]; !ok {
			return nil, dkgerrors.InvariantViolation("view", "node "+id+" left unmapped after eliminate phase")
		}
	}

	rewriteEdges(g, sg, policyVersion)

	return sg, nil
}

func mergeNodeProvenance(sn *graphmodel.SuperNode, n *graphmodel.Node) {
	sn.Provenance = append(sn.Provenance, n.Provenance...)
}

// connectedComponents returns the maximal connected components of g's
// undirected adjacency restricted to nodes in eligible, via an explicit
// stack (iterative, not recursive, to avoid stack depth issues on large
// flattened netlists) with deterministic sorted neighbor ordering.
func connectedComponents(g *graphmodel.Graph, eligible map[string]bool) [][]string {
	adj := map[string][]string{}
	for id := range eligible {
		adj[id] = nil
	}
	for _, e := range g.Edges {
		if eligible[e.SrcNode] && eligible[e.DstNode] {
			adj[e.SrcNode] = append(adj[e.SrcNode], e.DstNode)
			adj[e.DstNode] = append(adj[e.DstNode], e.SrcNode)
		}
	}
	for id := range adj {
		sort.Strings(adj[id])
	}

	ids := make([]string, 0, len(eligible))
	for id := range eligible {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visited := map[string]bool{}
	var components [][]string

	for _, start := range ids {
		if visited[start] {
			continue
		}
		var comp []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nbr := range adj[cur] {
				if !visited[nbr] {
					visited[nbr] = true
					stack = append(stack, nbr)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

func rewriteEdges(g *graphmodel.Graph, sg *graphmodel.SuperGraph, policyVersion string) {
	for _, e := range g.Edges {
		srcSN := sg.NodeToSuper[e.SrcNode]
		dstSN := sg.NodeToSuper[e.DstNode]

		if srcSN == dstSN {
			sg.SuperNodes[srcSN].MemberEdges[e.ID] = true
			continue
		}

		key := graphmodel.SuperEdgeKey(srcSN, dstSN)
		se, ok := sg.SuperEdges[key]
		if !ok {
			se = graphmodel.NewSuperEdge("", srcSN, dstSN)
			sg.SuperEdges[key] = se
		}
		se.MemberEdges[e.ID] = true
		se.MemberNodes[e.SrcNode] = true
		se.MemberNodes[e.DstNode] = true
		se.RelationTypes[e.Relation] = true
		se.FlowTypes[e.Flow] = true
		se.Provenance = append(se.Provenance, e.Provenance...)
	}

	for _, se := range sg.SuperEdges {
		memberIDs := make([]string, 0, len(se.MemberEdges))
		for id := range se.MemberEdges {
			memberIDs = append(memberIDs, id)
		}
		se.ID = identity.SuperEdgeID(se.SrcSuperNode, se.DstSuperNode, policyVersion, memberIDs)
	}
}
