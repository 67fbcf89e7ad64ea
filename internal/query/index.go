// Package query provides read-only indexed lookup and traversal over a
// finished base graph. Nothing in this package mutates graphmodel entities.
package query

import (
	"strings"

	"github.com/nandgate/hwdkg/internal/graphmodel"
)

// trieNode is one level of the hierarchy prefix trie, keyed on hier_path
// segments split on "/".
type trieNode struct {
	children map[string]*trieNode
	nodeIDs  []string // nodes whose full hier_path ends exactly here
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[string]*trieNode{}}
}

// Index is the Query Layer's read-only view over a graph: three indices
// built once in NewIndex (spec §4.9).
type Index struct {
	g *graphmodel.Graph

	byClass    map[graphmodel.EntityClass][]string
	byRelation map[graphmodel.RelationType][]string
	hierRoot   *trieNode
}

// NewIndex builds all three indices over g in a single pass.
func NewIndex(g *graphmodel.Graph) *Index {
	idx := &Index{
		g:          g,
		byClass:    map[graphmodel.EntityClass][]string{},
		byRelation: map[graphmodel.RelationType][]string{},
		hierRoot:   newTrieNode(),
	}

	for id, n := range g.Nodes {
		idx.byClass[n.EntityClass] = append(idx.byClass[n.EntityClass], id)
		idx.insertHier(n.HierPath, id)
	}
	for id, e := range g.Edges {
		idx.byRelation[e.Relation] = append(idx.byRelation[e.Relation], id)
	}

	return idx
}

func (idx *Index) insertHier(hierPath, nodeID string) {
	if hierPath == "" {
		return
	}
	cur := idx.hierRoot
	for _, seg := range strings.Split(hierPath, "/") {
		if seg == "" {
			continue
		}
		next, ok := cur.children[seg]
		if !ok {
			next = newTrieNode()
			cur.children[seg] = next
		}
		cur = next
	}
	cur.nodeIDs = append(cur.nodeIDs, nodeID)
}

func (idx *Index) trieLookup(prefix string) *trieNode {
	cur := idx.hierRoot
	for _, seg := range strings.Split(prefix, "/") {
		if seg == "" {
			continue
		}
		next, ok := cur.children[seg]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func collectSubtree(t *trieNode, out *[]string) {
	if t == nil {
		return
	}
	*out = append(*out, t.nodeIDs...)
	for _, child := range t.children {
		collectSubtree(child, out)
	}
}

// NodesByClass returns the node ids of the given entity class.
func (idx *Index) NodesByClass(class graphmodel.EntityClass) []string {
	return idx.byClass[class]
}

// EdgesByRelation returns the edge ids of the given relation type.
func (idx *Index) EdgesByRelation(rel graphmodel.RelationType) []string {
	return idx.byRelation[rel]
}

// AllByClass returns the full entity_class index, for callers that persist
// or otherwise need every class's ids at once rather than one lookup at a
// time (e.g. mirroring the index into querycache).
func (idx *Index) AllByClass() map[graphmodel.EntityClass][]string {
	return idx.byClass
}

// AllByRelation returns the full relation_type index, for the same
// whole-index callers AllByClass serves.
func (idx *Index) AllByRelation() map[graphmodel.RelationType][]string {
	return idx.byRelation
}

// HierarchyChildren returns the direct child segment names under prefix.
func (idx *Index) HierarchyChildren(prefix string) []string {
	t := idx.trieLookup(prefix)
	if t == nil {
		return nil
	}
	children := make([]string, 0, len(t.children))
	for seg := range t.children {
		children = append(children, seg)
	}
	return children
}

// HierarchySubtree returns every node id whose hier_path is prefix or a
// descendant of it.
func (idx *Index) HierarchySubtree(prefix string) []string {
	t := idx.trieLookup(prefix)
	var out []string
	collectSubtree(t, &out)
	return out
}
