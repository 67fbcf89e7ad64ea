package query

import (
	"github.com/nandgate/hwdkg/internal/constraint"
	"github.com/nandgate/hwdkg/internal/graphmodel"
)

// NodeFilter narrows a FilterNodes call. Zero-value fields are ignored.
// Predicate, if set, is applied last and can express anything the other
// fields cannot.
type NodeFilter struct {
	EntityClass  graphmodel.EntityClass
	NameGlob     string
	HierPrefix   string
	ClockDomain  string
	SlackMin     *float64
	SlackMax     *float64
	Predicate    func(*graphmodel.Node) bool
}

// FilterNodes returns every node satisfying every non-zero field of f.
func (idx *Index) FilterNodes(f NodeFilter) []*graphmodel.Node {
	var candidates []string
	switch {
	case f.EntityClass != "":
		candidates = idx.byClass[f.EntityClass]
	case f.HierPrefix != "":
		candidates = idx.HierarchySubtree(f.HierPrefix)
	default:
		for id := range idx.g.Nodes {
			candidates = append(candidates, id)
		}
	}

	var out []*graphmodel.Node
	for _, id := range candidates {
		n, ok := idx.g.Nodes[id]
		if !ok {
			continue
		}
		if f.EntityClass != "" && n.EntityClass != f.EntityClass {
			continue
		}
		if f.HierPrefix != "" && !hasHierPrefix(n.HierPath, f.HierPrefix) {
			continue
		}
		if f.NameGlob != "" && !constraint.Matches(f.NameGlob, n.LocalName) && !constraint.Matches(f.NameGlob, n.CanonicalName) {
			continue
		}
		if f.ClockDomain != "" && (n.ClockDomain == nil || *n.ClockDomain != f.ClockDomain) {
			continue
		}
		if f.SlackMin != nil && (n.Slack == nil || *n.Slack < *f.SlackMin) {
			continue
		}
		if f.SlackMax != nil && (n.Slack == nil || *n.Slack > *f.SlackMax) {
			continue
		}
		if f.Predicate != nil && !f.Predicate(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func hasHierPrefix(hierPath, prefix string) bool {
	if hierPath == prefix {
		return true
	}
	return len(hierPath) > len(prefix) && hierPath[:len(prefix)] == prefix && hierPath[len(prefix)] == '/'
}

// EdgeFilter narrows a FilterEdges call.
type EdgeFilter struct {
	Relation  graphmodel.RelationType
	Flow      graphmodel.FlowType
	Predicate func(*graphmodel.Edge) bool
}

// FilterEdges returns every edge satisfying every non-zero field of f.
func (idx *Index) FilterEdges(f EdgeFilter) []*graphmodel.Edge {
	var candidates []string
	if f.Relation != "" {
		candidates = idx.byRelation[f.Relation]
	} else {
		for id := range idx.g.Edges {
			candidates = append(candidates, id)
		}
	}

	var out []*graphmodel.Edge
	for _, id := range candidates {
		e, ok := idx.g.Edges[id]
		if !ok {
			continue
		}
		if f.Relation != "" && e.Relation != f.Relation {
			continue
		}
		if f.Flow != "" && e.Flow != f.Flow {
			continue
		}
		if f.Predicate != nil && !f.Predicate(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
