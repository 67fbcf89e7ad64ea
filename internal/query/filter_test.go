package query

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
)

func TestFilterNodesByClassAndSlack(t *testing.T) {
	g := buildHierGraph(t)
	s := -0.1
	g.Nodes["N_a"].Slack = &s
	idx := NewIndex(g)

	slackMax := 0.0
	got := idx.FilterNodes(NodeFilter{EntityClass: graphmodel.ClassFlipFlop, SlackMax: &slackMax})
	assert.Len(t, got, 1)
	assert.Equal(t, "N_a", got[0].ID)
}

func TestFilterNodesByNameGlob(t *testing.T) {
	g := buildHierGraph(t)
	g.Nodes["N_a"].LocalName = "reg0"
	g.Nodes["N_b"].LocalName = "lut0"
	idx := NewIndex(g)

	got := idx.FilterNodes(NodeFilter{NameGlob: "reg*"})
	assert.Len(t, got, 1)
	assert.Equal(t, "N_a", got[0].ID)
}

func TestFilterNodesPredicate(t *testing.T) {
	g := buildHierGraph(t)
	idx := NewIndex(g)

	got := idx.FilterNodes(NodeFilter{Predicate: func(n *graphmodel.Node) bool { return n.EntityClass == graphmodel.ClassIOPort }})
	assert.Len(t, got, 1)
	assert.Equal(t, "N_c", got[0].ID)
}

func TestFilterEdgesByRelation(t *testing.T) {
	g := buildHierGraph(t)
	idx := NewIndex(g)

	got := idx.FilterEdges(EdgeFilter{Relation: graphmodel.RelationData})
	assert.Len(t, got, 1)
}
